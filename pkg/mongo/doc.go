// Package mongo connects to MongoDB using go.mongodb.org/mongo-driver/v2.
//
// Config is parsed from the environment (DB_HOST, DB_PORT, DB_DATABASE or a
// full MONGODB_URL). New retries the initial connection and ping, and
// Healthcheck produces a probe for status endpoints.
package mongo
