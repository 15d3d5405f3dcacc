package translog

import "errors"

var (
	// ErrEntryValidation indicates an entry is missing required fields.
	ErrEntryValidation = errors.New("entry validation failed")

	// ErrStorageUnavailable indicates the storage backend rejected an operation.
	ErrStorageUnavailable = errors.New("transaction log storage is unavailable")
)
