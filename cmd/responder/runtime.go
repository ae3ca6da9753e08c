package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/responder-client/internal/app"
	"github.com/samvad-hq/responder-client/internal/config"
	"github.com/samvad-hq/responder-client/internal/logger"
)

// withSession loads config, initializes logging and opens a session for
// the duration of fn.
func withSession(requireCredentials bool, fn func(ctx context.Context, s *app.Session) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if requireCredentials {
		if err := cfg.RequireCredentials(); err != nil {
			return err
		}
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("responder client starting", "config", cfg.Redacted())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := app.NewSession(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize session", "error", err.Error())
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.WarnObj("session close failed", "error", err.Error())
		}
	}()

	return fn(ctx, session)
}
