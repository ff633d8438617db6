package mongo

import "errors"

var (
	ErrNotReady = errors.New("mongo: server not ready")
	ErrNotAlive = errors.New("mongo: ping failed")
)
