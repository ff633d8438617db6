// Package logger builds log/slog loggers with environment presets and
// context-aware attribute injection.
//
// Records are written as JSON in production and staging and as text in
// development. Context extractors registered with WithContextExtractors run
// on every record, which is how request ids reach log lines:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.AppEnv, "files-manager"),
//	    logger.WithContextExtractors(requestid.LogExtractor),
//	)
//	log.InfoContext(ctx, "file created", logger.FileID(f.ID))
//
// The attribute helpers in attr.go keep key names consistent across packages.
package logger
