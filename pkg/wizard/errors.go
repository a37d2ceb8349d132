package wizard

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("wizard: aborted")
	// ErrOverwriteDeclined is returned when the target file exists and the
	// user chose not to replace it.
	ErrOverwriteDeclined = errors.New("wizard: overwrite declined")
)
