package main

import (
	"context"

	"portfolio-api/cmd/api/auth"
	"portfolio-api/config"
	"portfolio-api/internal/logger"
	"portfolio-api/storage"
)

// ensureAdminUser creates the admin account on first run so a fresh deploy
// can log in without manual setup. Failures only log a warning: a missing
// admin user does not stop the public site from serving.
func ensureAdminUser(ctx context.Context, store storage.Storage, cfg config.AdminConfig) {
	existing, err := store.GetUserByUsername(ctx, cfg.Username)
	if err != nil {
		logger.Log.Warnf("could not check for admin user: %v", err)
		return
	}
	if existing != nil {
		return
	}

	hashed, err := auth.HashPassword(cfg.Password)
	if err != nil {
		logger.Log.Warnf("could not hash admin password: %v", err)
		return
	}
	if _, err := store.CreateUser(ctx, cfg.Username, hashed); err != nil {
		logger.Log.Warnf("could not auto-create admin user: %v", err)
		return
	}
	logger.Log.Infof("admin user %q created automatically; change the default password after first login", cfg.Username)
}
