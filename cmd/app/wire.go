//go:build wireinject
// +build wireinject

package main

import (
	"skusync/config"
	"skusync/internal/command"
	"skusync/internal/cron"
	"skusync/internal/handler"
	"skusync/internal/middleware"
	"skusync/internal/router"
	"skusync/internal/service"
	"skusync/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			newHttpClient,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init application.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(
		wire.Build(
			command.ProviderSet,
			service.ProviderSet,
			telemetry.ProviderSet,
			newHttpClient,
		),
	)
}
