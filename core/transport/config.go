package transport

import "time"

// Config holds transport configuration with environment variable support.
type Config struct {
	// BaseURL is the root of the scheduling API, e.g. "https://api.campus.example".
	BaseURL string `env:"SCHEDKIT_BASE_URL"`
	// Timeout bounds every request, replays included.
	Timeout time.Duration `env:"SCHEDKIT_TIMEOUT" envDefault:"30s"`
	// UserAgent is sent with every request.
	UserAgent string `env:"SCHEDKIT_USER_AGENT" envDefault:"schedkit"`
}

// Validate checks the configuration for required values.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	return nil
}
