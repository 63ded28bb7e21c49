// Package config provides configuration management for the content store.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Storage: S3/MinIO endpoint, credentials, bucket and region
//   - Content: locator protocol, root directory, key mode, staging and failure policies
//   - Log: Logging level and format
//
// Environment variables map to nested keys, e.g. STORAGE_BUCKET -> storage.bucket
// and CONTENT_ROOT_DIRECTORY -> content.root_directory.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Bucket)
package config
