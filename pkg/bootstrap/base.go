package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"dteai/internal/config"
	"dteai/internal/gateway"
	"dteai/internal/logger"
)

type Base struct {
	Config  *config.Config
	Logger  logger.Logger
	Gateway *gateway.Gateway
}

func NewBase(cfg *config.Config, log logger.Logger) *Base {
	return &Base{
		Config: cfg,
		Logger: log,
	}
}

func (b *Base) InitGateway(ctx context.Context, client *redis.Client) error {
	gw := gateway.New(client, b.Logger)
	if err := gw.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect gateway: %w", err)
	}

	b.Gateway = gw
	return nil
}

func (b *Base) ShutdownGateway() []error {
	var errs []error

	if b.Gateway != nil {
		if err := b.Gateway.Disconnect(); err != nil {
			errs = append(errs, fmt.Errorf("gateway disconnect error: %w", err))
		}
	}

	return errs
}

func (b *Base) Shutdown(ctx context.Context, additionalShutdown func(ctx context.Context) []error) error {
	b.Logger.Info("Shutting down application...")

	var errs []error

	errs = append(errs, b.ShutdownGateway()...)

	if additionalShutdown != nil {
		errs = append(errs, additionalShutdown(ctx)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	b.Logger.Info("Application exited successfully")
	return nil
}
