// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// framework-level settings (ports, TLS, log level); AppConfig is
// everything specific to Blogify.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm in the pool

	// Bearer-token configuration
	TokenSecret string        // HMAC signing secret (must be strong in production)
	TokenExpiry time.Duration // Lifetime of issued tokens

	// Media (blob) storage configuration
	MediaBackend   string // "local" or "http"
	MediaLocalPath string // Local storage path (e.g., "./uploads/media")
	MediaLocalURL  string // URL prefix for serving local files (e.g., "/media")
	MediaEndpoint  string // Remote media service base URL (http backend)
	MediaAPIKey    string // Bearer key for the remote media service

	// CORS
	AllowedOrigins []string // Origins allowed to call the API

	// Password reset
	ResetCodeExpiry time.Duration // Lifetime of emailed reset codes

	// SuperAdmin bootstrap
	SuperAdminEmail string // Email promoted to admin on startup (blank disables)
}
