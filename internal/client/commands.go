// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-auth-broker/models"
	"github.com/spf13/cobra"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// ErrUnknownOutput is returned when --out is neither "text" nor "json".
var ErrUnknownOutput = errors.New("unknown output format")

// Options are the persistent flags shared by every command.
type Options struct {
	// Address overrides ADAPTER_ADDRESS.
	Address string
	// Timeout overrides ADAPTER_REQUEST_TIMEOUT.
	Timeout time.Duration
	// Local runs the broker services in-process against the configured
	// storage instead of calling a remote broker.
	Local bool
	// Output is "text" or "json".
	Output string
}

// ClientFactory builds the [Client] a command talks to. The returned close
// function releases whatever the client holds and is always called.
type ClientFactory func(ctx context.Context, opts Options) (Client, func() error, error)

// NewRootCommand builds the command tree. Every subcommand obtains its client
// from factory.
func NewRootCommand(factory ClientFactory, buildInfo models.BuildInfo) *cobra.Command {
	opts := Options{Output: outputText}

	root := &cobra.Command{
		Use:           "auth-broker",
		Short:         "Command line client for the auth broker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Output != outputText && opts.Output != outputJSON {
				return fmt.Errorf("%w: %q (want %s|%s)", ErrUnknownOutput, opts.Output, outputText, outputJSON)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.Address, "address", "", "broker address (env ADAPTER_ADDRESS)")
	root.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "request timeout (env ADAPTER_REQUEST_TIMEOUT)")
	root.PersistentFlags().BoolVar(&opts.Local, "local", false, "run against the configured storage without a broker")
	root.PersistentFlags().StringVar(&opts.Output, "out", opts.Output, "output format: text|json")

	run := func(fn func(cmd *cobra.Command, c Client) error) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) (err error) {
			c, closeFn, err := factory(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("create client: %w", err)
			}
			defer func() {
				if closeFn != nil {
					err = errors.Join(err, closeFn())
				}
			}()

			return fn(cmd, c)
		}
	}

	root.AddCommand(
		newRegisterCommand(&opts, run),
		newLoginCommand(&opts, run),
		newAuthenticateCommand(&opts, run),
		newWhoAmICommand(&opts, run),
		newRevokeCommand(&opts, run),
		newVersionCommand(&opts, buildInfo),
	)

	return root
}

type runner func(fn func(cmd *cobra.Command, c Client) error) func(cmd *cobra.Command, args []string) error

type registerResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func newRegisterCommand(opts *Options, run runner) *cobra.Command {
	var (
		creds models.Credentials
		roles []string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a user with optional role accounts and authenticate the base client",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, c Client) error {
			user, token, err := c.RegisterUser(cmd.Context(), creds.Username, creds.Password, roles)
			if err != nil {
				return err
			}

			var text strings.Builder
			fmt.Fprintf(&text, "userid=%d username=%s token=%s", user.UserID, user.Username, token)
			for _, account := range user.Accounts {
				fmt.Fprintf(&text, "\naccount username=%s password=%s role=%s", account.Username, account.Password, account.Role)
			}

			return printResult(cmd, opts.Output, registerResult{User: user, Token: token}, text.String())
		}),
	}

	credentialFlags(cmd, &creds)
	cmd.Flags().StringSliceVar(&roles, "role", nil, "role account to create (repeatable)")

	return cmd
}

func newLoginCommand(opts *Options, run runner) *cobra.Command {
	var creds models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the base client's token",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, c Client) error {
			session, err := c.Login(cmd.Context(), creds.Username, creds.Password)
			if err != nil {
				return err
			}
			return printResult(cmd, opts.Output, session, session.Token)
		}),
	}

	credentialFlags(cmd, &creds)

	return cmd
}

func newAuthenticateCommand(opts *Options, run runner) *cobra.Command {
	var (
		creds  models.Credentials
		client models.ClientCredentials
	)

	cmd := &cobra.Command{
		Use:   "authenticate",
		Short: "Obtain a token for a client acting on behalf of a user",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, c Client) error {
			token, err := c.Authenticate(cmd.Context(), creds, client)
			if err != nil {
				return err
			}
			return printResult(cmd, opts.Output, models.TokenResponse{Token: token}, token)
		}),
	}

	credentialFlags(cmd, &creds)
	cmd.Flags().StringVar(&client.Name, "client-name", "", "client name")
	cmd.Flags().StringVar(&client.Secret, "client-secret", "", "client secret")
	_ = cmd.MarkFlagRequired("client-name")
	_ = cmd.MarkFlagRequired("client-secret")

	return cmd
}

func newWhoAmICommand(opts *Options, run runner) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity a token resolves to",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, c Client) error {
			identity, err := c.WhoAmI(cmd.Context(), token)
			if err != nil {
				return err
			}
			return printResult(cmd, opts.Output, identity, fmt.Sprintf("userid=%d role=%s", identity.UserID, identity.Role))
		}),
	}

	tokenFlag(cmd, &token)

	return cmd
}

func newRevokeCommand(opts *Options, run runner) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revoke a token",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, c Client) error {
			if err := c.Revoke(cmd.Context(), token); err != nil {
				return err
			}
			return printResult(cmd, opts.Output, map[string]bool{"revoked": true}, "revoked")
		}),
	}

	tokenFlag(cmd, &token)

	return cmd
}

func newVersionCommand(opts *Options, buildInfo models.BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd, opts.Output, buildInfo, buildInfo.String())
		},
	}
}

func credentialFlags(cmd *cobra.Command, creds *models.Credentials) {
	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
}

func tokenFlag(cmd *cobra.Command, token *string) {
	cmd.Flags().StringVarP(token, "token", "t", "", "token issued by the broker")
	_ = cmd.MarkFlagRequired("token")
}

func printResult(cmd *cobra.Command, output string, v any, text string) error {
	w := cmd.OutOrStdout()

	if output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	_, err := fmt.Fprintln(w, text)
	return err
}
