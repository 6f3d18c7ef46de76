package transform

import "errors"

// ErrUnknownTransform is returned when no transform is registered under a name.
var ErrUnknownTransform = errors.New("unknown transform")
