// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration; framework-level settings
// like HTTP ports, TLS, and logging live in WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: studyhall-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Base URL for OAuth callbacks (e.g., "https://library.example.com")
	BaseURL string

	// Bootstrap admin: created or refreshed on startup so the service
	// is never deployed without a working admin login.
	AdminEmail    string
	AdminName     string
	AdminPassword string

	// Google OAuth configuration for admin sign-in. Blank client ID
	// disables the Google routes.
	GoogleClientID     string
	GoogleClientSecret string

	// ActivityLog controls feed persistence: "all" (db+log), "db",
	// "log", or "off".
	ActivityLog string

	// DefaultMonthlyFee fills in the fee when a new member is
	// registered without one. Whole rupees; zero means no default.
	DefaultMonthlyFee int64
}
