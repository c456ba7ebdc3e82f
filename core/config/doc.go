// Package config provides configuration management for locize-sync.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional locize-sync.yaml config file. Defaults come
// from the `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Store: Backend (locize, bucket, database) and namespace
//   - Locize: Project id, API key, version
//   - Storage: S3/MinIO credentials, bucket and prefix
//   - Database: MySQL or SQLite connection details
//   - Server: Serve mode port, API key, cache TTL
//   - FindKeys: Source scanning options
//   - Resolver: How missing translations are supplied
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
