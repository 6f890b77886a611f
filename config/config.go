package config

// Config represents the core Baton configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Compile  CompileConfig  `mapstructure:"compile"`
	Watch    WatchConfig    `mapstructure:"watch"`
}

// DatabaseConfig configures the SQLite program library
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the baton serve HTTP/WebSocket service
type ServerConfig struct {
	Port              *int     `mapstructure:"port"` // Server port: nil = default 8765, 0 is invalid (omit for default)
	AllowedOrigins    []string `mapstructure:"allowed_origins"`
	CompilesPerSecond float64  `mapstructure:"compiles_per_second"` // Per-client compile rate over WebSocket
	CompileBurst      int      `mapstructure:"compile_burst"`       // Burst allowance for the per-client limiter
}

// CompileConfig configures Ensemble source generation
type CompileConfig struct {
	Indent string `mapstructure:"indent"` // Indentation unit for nested blocks (default: two spaces)
}

// WatchConfig configures patch watch mode (baton compile --watch)
type WatchConfig struct {
	DebounceMs int    `mapstructure:"debounce_ms"` // Quiet period before recompiling after a change
	Exec       string `mapstructure:"exec"`        // Command run with the generated source after each successful recompile
}

// Server port constants
const (
	DefaultServerPort = 8765 // Development port (easy to type, above privileged range)
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
