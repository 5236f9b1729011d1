package base

import "errors"

var (
	ErrCorruption = errors.New("tree invariant violated")
)
