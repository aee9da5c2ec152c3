// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/config"
	userstore "github.com/namanchauhanrajput/blogify/internal/app/store/users"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
//
// Blogify uses it to promote the configured superadmin account, so a
// fresh deployment has a working admin as soon as that user registers.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SuperAdminEmail == "" {
		return nil
	}

	users := userstore.New(deps.BlogifyMongoDatabase)
	u, err := users.GetByEmail(ctx, appCfg.SuperAdminEmail)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			logger.Info("superadmin email not registered yet; will not promote",
				zap.String("email", appCfg.SuperAdminEmail))
			return nil
		}
		return err
	}
	if u.IsAdmin {
		return nil
	}
	if err := users.SetAdmin(ctx, u.ID, true); err != nil {
		return err
	}
	logger.Info("promoted superadmin", zap.String("user_id", u.ID.Hex()))
	return nil
}
