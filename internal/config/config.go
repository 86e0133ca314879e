package config

import (
	"os"
	"strconv"
	"time"
)

// Config is read once at boot. Offline is the mode selection: true binds
// every service to the embedded local store, false to the remote document
// database. There is no runtime switch.
type Config struct {
	Port     string
	LogLevel string

	Offline    bool
	SQLitePath string

	SurrealURL       string
	SurrealNamespace string
	SurrealDatabase  string
	SurrealUser      string
	SurrealPassword  string

	JWTSecret             string
	AccessTokenTTLMinutes int

	AdminUsername  string
	AdminPassword  string
	AdminEmail     string
	AdminFirstName string
	AdminLastName  string

	SweepInterval time.Duration
	HydrateOnBoot bool
}

func Load() *Config {
	return &Config{
		Port:     getenv("PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		Offline:    getenvBool("OFFLINE_MODE", false),
		SQLitePath: getenv("SQLITE_PATH", "fams.db"),

		SurrealURL:       getenv("SURREAL_URL", "ws://localhost:8000/rpc"),
		SurrealNamespace: getenv("SURREAL_NAMESPACE", "fams"),
		SurrealDatabase:  getenv("SURREAL_DATABASE", "fams"),
		SurrealUser:      getenv("SURREAL_USER", "root"),
		SurrealPassword:  getenv("SURREAL_PASS", "root"),

		JWTSecret:             getenv("JWT_SECRET", "supersecret_change_me"),
		AccessTokenTTLMinutes: getenvInt("ACCESS_TOKEN_TTL_MINUTES", 60),

		AdminUsername:  getenv("ADMIN_USERNAME", "superadmin"),
		AdminPassword:  getenv("ADMIN_PASSWORD", "admin123"),
		AdminEmail:     getenv("ADMIN_EMAIL", "admin@example.com"),
		AdminFirstName: getenv("ADMIN_FIRST_NAME", "System"),
		AdminLastName:  getenv("ADMIN_LAST_NAME", "Administrator"),

		SweepInterval: getenvDuration("SWEEP_INTERVAL", 10*time.Minute),
		HydrateOnBoot: getenvBool("HYDRATE_ON_BOOT", true),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
