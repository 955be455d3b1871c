package statsdb

import "errors"

// ErrNotFound indicates no artifact has been built for the match yet.
var ErrNotFound = errors.New("artifact not found")
