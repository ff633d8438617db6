// Package session implements opaque token sessions over a key-value cache.
//
// Manager.Issue generates a UUIDv4 token and stores <prefix><token> -> userID
// with a fixed TTL (24h by default). Resolve is a single cache read; Revoke a
// single delete. Nothing is kept in process memory, so any number of API
// instances can share one cache.
//
//	store := redis.NewStorage(client)
//	mgr, _ := session.New(store, session.WithConfig(cfg))
//	transport := session.NewHeaderTransport(cfg.HeaderName)
//	r.Use(mgr.Middleware(transport))
//
// Handlers read the caller with UserIDFromContext. MemoryStore implements
// Store for tests.
package session
