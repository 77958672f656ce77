// Package config provides configuration management for testset-sync.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: test-management database connection
//   - Storage: S3/MinIO credentials and bucket for result files
//   - Log: Logging level and format
//   - Repository: project, login, test-set folder and name override
//   - Results: result file location, delimiter and source
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Results.Path)
package config
