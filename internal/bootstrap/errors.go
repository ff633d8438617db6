package bootstrap

import "errors"

var ErrMissingComponent = errors.New("bootstrap: missing required component")
