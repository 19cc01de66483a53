package ports

import "errors"

var (
	// ErrConcurrentUpdate means the storage aborted the write because another
	// transaction held or changed the same rows. The operation may be retried.
	ErrConcurrentUpdate = errors.New("concurrent update")

	// ErrDuplicate means a uniqueness constraint rejected the write.
	ErrDuplicate = errors.New("duplicate")
)
