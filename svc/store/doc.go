// Package store persists users and file records.
//
// Two implementations share the Store contract: Mongo, backed by the
// "users" and "files" collections, and Memory for tests and single process
// development. Record ids are MongoDB ObjectID hex strings in both, so an id
// that is not valid hex is reported as ErrNotFound rather than as a
// validation failure.
package store
