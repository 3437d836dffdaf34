package app

import (
	"log/slog"

	"github.com/heartmarshall/paradict-backend/internal/adapter/cache"
	"github.com/heartmarshall/paradict-backend/internal/adapter/provider/longdo"
	"github.com/heartmarshall/paradict-backend/internal/config"
	"github.com/heartmarshall/paradict-backend/internal/service/lookup"
)

// Services holds the long-lived components shared by the server and the CLI.
type Services struct {
	Provider *longdo.Provider
	Cache    *cache.Responses // nil when caching is disabled
	Lookup   *lookup.Service
}

// NewServices builds the provider, cache and lookup service from cfg.
func NewServices(cfg *config.Config, logger *slog.Logger) *Services {
	provider := longdo.NewProvider(cfg.Upstream, logger)
	responses := cache.New(cfg.Cache)

	return &Services{
		Provider: provider,
		Cache:    responses,
		Lookup:   lookup.NewService(logger, provider, responses, cfg.Lookup),
	}
}
