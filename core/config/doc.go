// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads a .env file on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/campusdesk/schedkit/core/config"
//
//	type APIConfig struct {
//		BaseURL string        `env:"SCHEDKIT_BASE_URL,required"`
//		Timeout time.Duration `env:"SCHEDKIT_TIMEOUT" envDefault:"30s"`
//	}
//
//	func main() {
//		var cfg APIConfig
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
package config
