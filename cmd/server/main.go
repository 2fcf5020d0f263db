// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/MKhiriev/go-auth-broker/internal/config"
	"github.com/MKhiriev/go-auth-broker/internal/handler"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/metrics"
	"github.com/MKhiriev/go-auth-broker/internal/server"
	"github.com/MKhiriev/go-auth-broker/internal/service"
	"github.com/MKhiriev/go-auth-broker/internal/store"
	"github.com/MKhiriev/go-auth-broker/internal/workers"
	"github.com/MKhiriev/go-auth-broker/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Println(models.NewBuildInfo(buildVersion, buildDate, buildCommit))

	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	log := logger.NewLogger("auth-broker-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Dur("token_ttl", cfg.App.TokenTTL).
		Strs("admin_roles", cfg.App.AdminRoles).
		Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services := service.NewServices(storages, cfg.App, log)
	if _, err = services.CredentialService.EnsureBaseClient(ctx); err != nil {
		log.Fatal().Err(err).Msg("error provisioning base client")
	}

	m, err := metrics.New()
	if err != nil {
		log.Fatal().Err(err).Msg("error registering metrics")
	}

	handlers, err := handler.NewHandlers(services, m, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bgWorkers := workers.NewWorkers(services, m, cfg.App, cfg.Workers, log)

	srv, err := server.NewServer(handlers, bgWorkers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
