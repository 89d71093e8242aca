package arc

// RecoveryAction selects how a build responds to a failed file open.
type RecoveryAction uint8

const (
	// ActionAbort stops the whole build. It is the zero value, so a
	// handler that returns without deciding fails safe instead of
	// looping.
	ActionAbort RecoveryAction = iota

	// ActionIgnore skips the failing file. No entry is written for it and
	// its bytes never enter the cumulative progress totals.
	ActionIgnore

	// ActionRetry opens the same file again. Each failed retry calls the
	// handler once more with an incremented Attempt; retries are
	// unbounded here, so the handler must eventually choose Ignore or
	// Abort for a file that never recovers.
	ActionRetry
)

// String returns the string representation of the action.
func (a RecoveryAction) String() string {
	switch a {
	case ActionAbort:
		return "abort"
	case ActionIgnore:
		return "ignore"
	case ActionRetry:
		return "retry"
	default:
		return "unknown"
	}
}

// Failure describes one failed attempt to open a queued file.
type Failure struct {
	// Path is the archive-relative name of the failing file.
	Path string

	// Attempt counts open attempts for this file, starting at 1.
	Attempt int

	// Err is the underlying open error.
	Err error
}

// FailureFunc decides how the build proceeds after a failed file open. It
// runs inline with the build loop and its return value takes effect on
// return. Only open-time failures reach the handler; an error while reading
// an already-open file or writing the archive is always fatal. When no
// handler is registered the first open failure fails the build with a
// *FileError.
type FailureFunc func(Failure) RecoveryAction
