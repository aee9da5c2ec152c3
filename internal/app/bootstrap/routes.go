// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	adminfeature "github.com/namanchauhanrajput/blogify/internal/app/features/admin"
	authfeature "github.com/namanchauhanrajput/blogify/internal/app/features/auth"
	blogsfeature "github.com/namanchauhanrajput/blogify/internal/app/features/blogs"
	healthfeature "github.com/namanchauhanrajput/blogify/internal/app/features/health"
	notificationsfeature "github.com/namanchauhanrajput/blogify/internal/app/features/notifications"
	usersfeature "github.com/namanchauhanrajput/blogify/internal/app/features/users"
	"github.com/namanchauhanrajput/blogify/internal/app/store/passwordreset"
	userstore "github.com/namanchauhanrajput/blogify/internal/app/store/users"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/media"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. Blogify builds the token
// manager and media backend from config, applies CORS and the global
// identity loader, and mounts the feature routers under /api.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.BlogifyMongoDatabase

	tokens, err := sysauth.NewManager(appCfg.TokenSecret, appCfg.TokenExpiry)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	blobs, err := buildMediaStore(appCfg)
	if err != nil {
		logger.Error("media backend init failed", zap.Error(err))
		return nil, err
	}

	// The route guards re-check identity against the live user document
	// so deleted accounts and revoked admins lose access immediately.
	mw := &sysauth.Middleware{
		Tokens:  tokens,
		Fetcher: userstore.New(db),
		Log:     logger,
	}

	resets := passwordreset.New(db, appCfg.ResetCodeExpiry)

	// Reset codes go out through the ops log until a mail provider is
	// wired up; the code itself is only emitted outside production.
	sendCode := func(ctx context.Context, email, code string) error {
		if coreCfg.Env == "prod" {
			logger.Info("password reset code issued", zap.String("email", email))
		} else {
			logger.Info("password reset code issued",
				zap.String("email", email), zap.String("code", code))
		}
		return nil
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Global auth middleware: decodes a bearer token into the request
	// context when present. Requests without a token pass through
	// anonymously; route groups opt into RequireAuth/RequireAdmin.
	r.Use(mw.LoadIdentity)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.BlogifyMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Locally stored media, when the local backend is active.
	if local, ok := blobs.(*media.LocalStore); ok {
		r.Handle(appCfg.MediaLocalURL+"/*", fileserver.Handler(appCfg.MediaLocalURL, local.Root()))
	}

	authHandler := authfeature.NewHandler(db, tokens, resets, sendCode, logger)
	r.Mount("/api/auth", authfeature.Routes(authHandler, mw))

	blogsHandler := blogsfeature.NewHandler(db, blobs, logger)
	r.Mount("/api/blog", blogsfeature.Routes(blogsHandler, mw))

	usersHandler := usersfeature.NewHandler(db, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler))

	notifHandler := notificationsfeature.NewHandler(db, logger)
	r.Mount("/api/notifications", notificationsfeature.Routes(notifHandler, mw))

	adminHandler := adminfeature.NewHandler(db, blobs, logger)
	r.Mount("/api/admin", adminfeature.Routes(adminHandler, mw))

	return r, nil
}

// buildMediaStore selects the blob backend from config.
func buildMediaStore(appCfg AppConfig) (media.Store, error) {
	if appCfg.MediaBackend == "http" {
		return media.NewHTTPStore(appCfg.MediaEndpoint, appCfg.MediaAPIKey, 0), nil
	}
	return media.NewLocalStore(appCfg.MediaLocalPath, appCfg.MediaLocalURL)
}
