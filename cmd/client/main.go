// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MKhiriev/go-auth-broker/internal/client"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	_ = godotenv.Load()

	log := logger.NewClientLogger("auth-broker-client")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := client.NewApp(models.NewBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		stop()
		os.Exit(1)
	}
}
