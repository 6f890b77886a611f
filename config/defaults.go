package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "baton.db")

	// Server configuration defaults
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost",
		"https://localhost",
		"http://127.0.0.1",
		"https://127.0.0.1",
		"tauri://localhost", // Allow the Tactus desktop editor
	})
	v.SetDefault("server.compiles_per_second", 5.0)
	v.SetDefault("server.compile_burst", 10)

	// Compile defaults
	v.SetDefault("compile.indent", "  ")

	// Watch mode defaults
	v.SetDefault("watch.debounce_ms", 300)
	v.SetDefault("watch.exec", "")
}

// BindSensitiveEnvVars explicitly binds machine-local configuration to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	// Database path
	v.BindEnv("database.path", "BATON_DATABASE_PATH")

	// Watch exec hook runs an arbitrary command, so it is bindable but never persisted by the editor
	v.BindEnv("watch.exec", "BATON_WATCH_EXEC")
}

// GetServerPort returns the configured serve port, falling back to the default
func (c *Config) GetServerPort() int {
	if c.Server.Port == nil || *c.Server.Port == 0 {
		return DefaultServerPort
	}
	return *c.Server.Port
}

// GetServerAllowedOrigins returns the allowed CORS origins
func (c *Config) GetServerAllowedOrigins() []string {
	if len(c.Server.AllowedOrigins) == 0 {
		return []string{
			"http://localhost",
			"https://localhost",
			"http://127.0.0.1",
			"https://127.0.0.1",
			"tauri://localhost", // Allow the Tactus desktop editor
		}
	}
	return c.Server.AllowedOrigins
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return "baton.db" // Fallback default
	}
	return c.Database.Path
}

// GetIndent returns the indentation unit for generated source
func (c *Config) GetIndent() string {
	if c.Compile.Indent == "" {
		return "  "
	}
	return c.Compile.Indent
}

// GetWatchDebounceMs returns the watch-mode debounce period in milliseconds
func (c *Config) GetWatchDebounceMs() int {
	if c.Watch.DebounceMs <= 0 {
		return 300
	}
	return c.Watch.DebounceMs
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Database: %s, Server: {Port: %d}, Watch: {DebounceMs: %d}}",
		c.Database.Path, c.GetServerPort(), c.GetWatchDebounceMs())
}
