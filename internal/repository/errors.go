package repository

import "errors"

// ErrDuplicateKey marks an insert rejected by a uniqueness constraint.
// Services map it to their conflict error rather than a transient one.
var ErrDuplicateKey = errors.New("duplicate key")
