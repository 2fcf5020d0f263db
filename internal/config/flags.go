// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// rolesValue is a comma separated list of roles. It implements flag.Value.
type rolesValue []string

func (r *rolesValue) String() string {
	return strings.Join(*r, ",")
}

func (r *rolesValue) Set(s string) error {
	for _, role := range strings.Split(s, ",") {
		if role = strings.TrimSpace(role); role != "" {
			*r = append(*r, role)
		}
	}
	return nil
}

// parseFlags parses server configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-base-client-name name of the well-known client
//	-base-client-secret secret of the well-known client
//	-password-hash-cost bcrypt cost
//	-token-ttl token lifetime (e.g., "24h"), 0 disables expiry
//	-admin-roles comma separated roles allowed on admin routes
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-token-cleanup-interval how often expired tokens are purged
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var adminRoles rolesValue
	var databaseDSN string
	var jsonConfigPath string
	var baseClientName string
	var baseClientSecret string
	var passwordHashCost int
	var tokenTTL time.Duration
	var requestTimeout time.Duration
	var cleanupInterval time.Duration

	fs := flag.NewFlagSet("auth-broker", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&adminRoles, "admin-roles", "Comma separated admin roles")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&baseClientName, "base-client-name", "", "Base client name")
	fs.StringVar(&baseClientSecret, "base-client-secret", "", "Base client secret")
	fs.IntVar(&passwordHashCost, "password-hash-cost", 0, "bcrypt cost")
	fs.DurationVar(&tokenTTL, "token-ttl", 0, "Token lifetime (e.g., 24h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&cleanupInterval, "token-cleanup-interval", 0, "Expired token purge interval")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			BaseClientName:   baseClientName,
			BaseClientSecret: baseClientSecret,
			PasswordHashCost: passwordHashCost,
			TokenTTL:         tokenTTL,
			AdminRoles:       adminRoles,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers:      Workers{TokenCleanupInterval: cleanupInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces. Otherwise the host must be "localhost"
// or a valid IP address.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be within 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
