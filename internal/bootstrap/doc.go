// Package bootstrap builds the process wide dependency graph shared by the
// API server and the worker: configuration, logger, store clients, session
// manager, job queue, blob storage, mailer and the domain services.
package bootstrap
