package metadata

import "errors"

// ErrInvalidArgument reports a nil or malformed configuration input.
var ErrInvalidArgument = errors.New("metadata: invalid argument")
