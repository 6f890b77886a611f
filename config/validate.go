package config

import (
	"strings"

	"github.com/tactus/baton/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Database path is optional - empty defaults to "baton.db" per defaults.go
	// No validation needed here

	// Server port: 0 is invalid (omit for default), negative is invalid
	if c.Server.Port != nil && *c.Server.Port == 0 {
		return errors.Newf("server.port cannot be 0 (omit for default port %d)", DefaultServerPort)
	}
	if c.Server.Port != nil && *c.Server.Port < 0 {
		return errors.Newf("server.port must be positive, got %d", *c.Server.Port)
	}

	// Compile rate limiting: 0 = unlimited, negative = invalid
	if c.Server.CompilesPerSecond < 0 {
		return errors.Newf("server.compiles_per_second must be >= 0, got %f", c.Server.CompilesPerSecond)
	}
	if c.Server.CompileBurst < 0 {
		return errors.Newf("server.compile_burst must be >= 0, got %d", c.Server.CompileBurst)
	}

	// Indent must be whitespace, anything else would end up inside generated source
	if c.Compile.Indent != "" && strings.Trim(c.Compile.Indent, " \t") != "" {
		return errors.Newf("compile.indent must contain only spaces and tabs, got %q", c.Compile.Indent)
	}

	// Watch debounce: 0 = use default, negative = invalid
	if c.Watch.DebounceMs < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMs)
	}

	return nil
}
