package types

import "time"

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":5000").
	Addr string `json:"addr" yaml:"addr"`

	// ClientURL is the allowed CORS origin for the browser client.
	ClientURL string `json:"client_url" yaml:"client_url"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// ConvertConfig holds settings for the document conversion stage.
type ConvertConfig struct {
	// Timeout bounds a single LibreOffice invocation (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// TempDir is the parent directory for conversion scratch workspaces.
	// Empty means the system temp directory.
	TempDir string `json:"temp_dir,omitempty" yaml:"temp_dir,omitempty"`
}

// AuthConfig holds settings for session token issuance.
type AuthConfig struct {
	// JWTSecret signs session tokens (HS256). Loadable from .secrets/jwt-secret.
	JWTSecret string `json:"jwt_secret,omitempty" yaml:"jwt_secret,omitempty"`

	// TokenExpiry is the session token lifetime (default 7 days).
	TokenExpiry time.Duration `json:"token_expiry" yaml:"token_expiry"`
}

// StorageConfig holds settings for the persistence layer.
type StorageConfig struct {
	// DataDir is the directory holding the SQLite database file.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// AppConfig groups all stage configurations for the server.
type AppConfig struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Auth    AuthConfig    `json:"auth" yaml:"auth"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
}
