// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	adminstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/admins"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return ensureAdmin(ctx, deps, appCfg, logger)
}

// ensureAdmin creates or refreshes the bootstrap admin account so a
// fresh deployment always has a working admin login. No-op when the
// admin credentials are not configured.
func ensureAdmin(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" {
		logger.Warn("no bootstrap admin configured; set admin_email and admin_password")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(appCfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admins := adminstore.New(deps.MongoDatabase)
	if err := admins.Upsert(ctx, appCfg.AdminName, appCfg.AdminEmail, string(hash)); err != nil {
		return fmt.Errorf("ensure admin account: %w", err)
	}

	logger.Info("bootstrap admin ensured", zap.String("email", appCfg.AdminEmail))
	return nil
}
