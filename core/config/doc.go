// Package config provides configuration management for the migration tool.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into
// subsections:
//   - Source: source inventory API (base URL, token, TLS verification)
//   - Target: target inventory API (base URL, token, TLS verification)
//   - Migrate: engine behavior (dry-run, rate limit, retries, scope schema)
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Target.URL)
package config
