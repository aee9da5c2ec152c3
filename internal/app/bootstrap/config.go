// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/store/passwordreset"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Blogify.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_secret, etc.
//   - Environment variables: BLOGIFY_MONGO_URI, BLOGIFY_TOKEN_SECRET, etc.
//   - Command-line flags: --mongo_uri, --token_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "blogify", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Bearer-token configuration
	{Name: "token_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Token signing secret (must be strong in production)"},
	{Name: "token_expiry", Default: "72h", Desc: "Login token lifetime (e.g., 72h, 24h)"},

	// Media storage configuration
	{Name: "media_backend", Default: "local", Desc: "Media backend: 'local' or 'http'"},
	{Name: "media_local_path", Default: "./uploads/media", Desc: "Local storage path for uploaded media"},
	{Name: "media_local_url", Default: "/media", Desc: "URL prefix for serving local media"},
	{Name: "media_endpoint", Default: "", Desc: "Remote media service base URL (http backend)"},
	{Name: "media_api_key", Default: "", Desc: "Bearer key for the remote media service"},

	// CORS
	{Name: "allowed_origins", Default: "*", Desc: "Comma-separated origins allowed to call the API"},

	// Password reset
	{Name: "reset_code_expiry", Default: "10m", Desc: "Password reset code expiry (e.g., 10m, 1h)"},

	// SuperAdmin bootstrap
	{Name: "superadmin_email", Default: "", Desc: "Email of the superadmin user (promoted on startup)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, BLOGIFY_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "BLOGIFY", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenSecret: appValues.String("token_secret"),
		TokenExpiry: appValues.Duration("token_expiry", sysauth.DefaultTokenExpiry),

		MediaBackend:   appValues.String("media_backend"),
		MediaLocalPath: appValues.String("media_local_path"),
		MediaLocalURL:  appValues.String("media_local_url"),
		MediaEndpoint:  appValues.String("media_endpoint"),
		MediaAPIKey:    appValues.String("media_api_key"),

		AllowedOrigins: splitOrigins(appValues.String("allowed_origins")),

		ResetCodeExpiry: appValues.Duration("reset_code_expiry", passwordreset.DefaultExpiry),

		SuperAdminEmail: appValues.String("superadmin_email"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Blogify validates the MongoDB URI format and the media backend choice
// early, before attempting to connect to anything.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.MediaBackend {
	case "local":
		if appCfg.MediaLocalPath == "" {
			return fmt.Errorf("media_backend 'local' requires media_local_path")
		}
	case "http":
		if appCfg.MediaEndpoint == "" {
			return fmt.Errorf("media_backend 'http' requires media_endpoint")
		}
	default:
		return fmt.Errorf("unknown media_backend %q (want 'local' or 'http')", appCfg.MediaBackend)
	}

	if coreCfg.Env == "prod" && strings.HasPrefix(appCfg.TokenSecret, "dev-only") {
		return fmt.Errorf("token_secret still has the development default; set BLOGIFY_TOKEN_SECRET")
	}

	return nil
}

// splitOrigins parses the comma-separated allowed_origins value.
func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}
