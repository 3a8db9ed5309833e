package content

import "errors"

var (
	NotFoundErr      = errors.New("entity not found")
	InvalidEntityErr = errors.New("invalid entity")
	// StorageErr marks a failure of the underlying record store. Writes are
	// not committed to callers until the store acknowledges them.
	StorageErr = errors.New("storage failure")
)
