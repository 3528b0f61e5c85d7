package storage

import "errors"

// Common errors returned by storage implementations.
var (
	// ErrAlreadyInTx is returned when Begin is called on a transactional handle.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned by Commit and Rollback outside a transaction.
	ErrNotInTx = errors.New("not in tx")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate")
	// ErrMissingReference is returned when a write points at a missing row,
	// e.g. a profile for a deleted user.
	ErrMissingReference = errors.New("missing reference")
)
