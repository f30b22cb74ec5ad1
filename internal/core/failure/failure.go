// Package failure defines the error kinds shared by the stores and services.
// Callers wrap these with fmt.Errorf("...: %w", ...) and test with errors.Is.
package failure

import "errors"

var (
	// ErrStorage means the backing database was unreachable or rejected the operation.
	ErrStorage = errors.New("storage error")

	// ErrNotFound means the addressed id does not exist in the addressed store.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument means an unrecognized setting name, status value or malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateLink means a posting with the same link is already stored.
	ErrDuplicateLink = errors.New("duplicate link")
)

// Kind returns the sentinel an error wraps, or nil when it wraps none of them.
func Kind(err error) error {
	for _, k := range []error{ErrNotFound, ErrDuplicateLink, ErrInvalidArgument, ErrStorage} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
