package types

import "time"

// HTTPConfig holds shared HTTP settings for everything that talks to the
// network. One client built from this config is shared by all components;
// nothing opens a private connection pool.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "cygnet/0.2").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// Mailto is the contact address sent to the Crossref registry on every
	// request, per its politeness convention.
	Mailto string `json:"mailto" yaml:"mailto" mapstructure:"mailto"`

	// MaxConnections bounds concurrent connections in the shared pool.
	// Batch operations use the same number as their concurrency cap
	// (default 20).
	MaxConnections int `json:"max_connections" yaml:"max_connections" mapstructure:"max_connections"`

	// RequestsPerSecond rate-limits outgoing requests (default 10).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// LibraryConfig holds settings for the on-disk article library.
type LibraryConfig struct {
	// Dir is the library root. It contains db.yaml, pdf/, si/, backups/
	// and index/.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxBackups is the number of rotated db.yaml backups to keep
	// (default 5).
	MaxBackups int `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups"`
}

// Config groups all settings for the cygnet CLI.
type Config struct {
	HTTP    HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
	Library LibraryConfig `json:"library" yaml:"library" mapstructure:"library"`
}

const (
	// DefaultMaxConnections is the shared connection-pool cap.
	DefaultMaxConnections = 20

	// DefaultMaxBackups is how many database backups are kept.
	DefaultMaxBackups = 5
)

// WithDefaults fills unset fields with the standard defaults.
func (c Config) WithDefaults() Config {
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = 60 * time.Second
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = "cygnet/0.2"
	}
	if c.HTTP.MaxConnections == 0 {
		c.HTTP.MaxConnections = DefaultMaxConnections
	}
	if c.HTTP.RequestsPerSecond == 0 {
		c.HTTP.RequestsPerSecond = 10
	}
	if c.Library.Dir == "" {
		c.Library.Dir = "library"
	}
	if c.Library.MaxBackups == 0 {
		c.Library.MaxBackups = DefaultMaxBackups
	}
	return c
}
