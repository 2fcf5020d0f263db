// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-auth-broker/internal/adapter"
	"github.com/MKhiriev/go-auth-broker/internal/config"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/service"
	"github.com/MKhiriev/go-auth-broker/internal/store"
	"github.com/MKhiriev/go-auth-broker/models"
	"github.com/spf13/cobra"
)

// App is the command line client process: configuration, transport and the
// cobra command tree.
type App struct {
	root   *cobra.Command
	logger *logger.Logger
}

// NewApp builds the client application.
func NewApp(buildInfo models.BuildInfo, logger *logger.Logger) *App {
	app := &App{logger: logger}
	app.root = NewRootCommand(app.newClient, buildInfo)
	return app
}

// Run executes the command selected by args and blocks until it returns.
func (a *App) Run(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.root.ExecuteContext(ctx)
}

func (a *App) newClient(ctx context.Context, opts Options) (Client, func() error, error) {
	if opts.Local {
		return a.newLocalClient(ctx)
	}
	return a.newRemoteClient(opts)
}

// newRemoteClient talks to a broker over HTTP.
func (a *App) newRemoteClient(opts Options) (Client, func() error, error) {
	cfg, err := config.GetClientConfig(config.ClientAdapter{
		HTTPAddress:    opts.Address,
		RequestTimeout: opts.Timeout,
	})
	if err != nil {
		return nil, nil, err
	}

	auth, err := adapter.NewHTTPAuthAdapter(cfg.Adapter, a.logger)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Debug().Str("address", cfg.Adapter.HTTPAddress).Msg("using remote broker")
	return NewAuthClient(auth, cfg.App, a.logger), nil, nil
}

// newLocalClient runs the broker services in this process over the
// configured storage. The base client is provisioned the same way the server
// does it at startup.
func (a *App) newLocalClient(ctx context.Context) (Client, func() error, error) {
	cfg, err := config.GetLocalConfig()
	if err != nil {
		return nil, nil, err
	}

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating storages: %w", err)
	}

	services := service.NewServices(storages, cfg.App, a.logger)
	if _, err = services.CredentialService.EnsureBaseClient(ctx); err != nil {
		_ = storages.Close()
		return nil, nil, fmt.Errorf("error provisioning base client: %w", err)
	}

	clientApp := config.ClientApp{
		BaseClientName:   cfg.App.BaseClientName,
		BaseClientSecret: cfg.App.BaseClientSecret,
	}

	a.logger.Debug().Msg("using in-process broker services")
	return NewAuthClient(adapter.NewLocalAuthAdapter(services), clientApp, a.logger), storages.Close, nil
}
