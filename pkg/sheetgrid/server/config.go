package server

import "time"

// Config controls the HTTP listener and page rendering.
type Config struct {
	// Addr is the listen address, for example ":5000".
	Addr string
	// MaxBodyBytes caps the size of a request body.
	MaxBodyBytes int64
	// ShutdownTimeout bounds the graceful shutdown after the context ends.
	ShutdownTimeout time.Duration
	// TemplatesDir, when set, holds an index.html that replaces the
	// embedded landing page.
	TemplatesDir string
	// StaticDir, when set, is served under /static/.
	StaticDir string
	// Version is reported by /health.
	Version string
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            ":5000",
		MaxBodyBytes:    32 << 20,
		ShutdownTimeout: 10 * time.Second,
		Version:         "dev",
	}
}
