// Package config loads process configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// the optional `.env` file in the working directory is applied once, then each
// configuration struct is parsed from its `env` tags and cached by type, so
// repeated calls to Load for the same type are served from memory.
//
// Structs may additionally carry `validate` tags
// (github.com/go-playground/validator/v10). Load runs the validator after
// parsing and reports the first failing field:
//
//	type StorageConfig struct {
//	    Driver string `env:"STORAGE_DRIVER" envDefault:"local" validate:"oneof=local s3"`
//	    Root   string `env:"FOLDER_PATH" envDefault:"/tmp/files_manager" validate:"required"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Errors can be matched with errors.Is against ErrParsingConfig,
// ErrInvalidConfig and ErrNilPointer. Tests that change the environment call
// Reset to drop cached values.
package config
