package btmap

import (
	"errors"

	"github.com/alexhholmes/btmap/internal/base"
)

//goland:noinspection GoUnusedGlobalVariable
var (
	// ErrKeyNotFound is the panic value (wrapped with the key) of MustGet and
	// MustSet on a missing key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrTreeModified is the panic value of an iterator used after its tree
	// gained or lost keys.
	ErrTreeModified = errors.New("tree modified during iteration")

	// ErrCorruption is wrapped by every error Check reports.
	ErrCorruption = base.ErrCorruption
)
