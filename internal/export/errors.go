package export

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat is returned by ParseFormats for an unrecognised name.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrUnsupportedFile is returned by ReadFile for an unrecognised extension.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrHeaderMismatch is returned when a tabular file's header differs from
	// activity.Columns.
	ErrHeaderMismatch = errors.New("header does not match activity columns")

	// ErrFingerprintMismatch is returned when a SQLite export's records no
	// longer match the fingerprint stored with their run.
	ErrFingerprintMismatch = errors.New("records do not match stored fingerprint")
)

// WriteError reports a filesystem failure during export.
// Files written before the failure are left on disk.
type WriteError struct {
	Op   string // "create directory", "write csv", ...
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
