package interview

import (
	"errors"
	"fmt"
)

// ValidationError blocks an operation and carries a reason meant for the
// end user (missing interviewee name, unanswered required question).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceWarning reports that an external storage call failed during
// a state transition. The in-memory transition has already happened; the
// caller should surface the warning (retry, reconnect) rather than treat
// it as a hard failure.
type PersistenceWarning struct {
	Op  string
	Err error
}

func (w *PersistenceWarning) Error() string {
	return fmt.Sprintf("%s not persisted: %v", w.Op, w.Err)
}

func (w *PersistenceWarning) Unwrap() error {
	return w.Err
}

// IsPersistenceWarning reports whether err is a PersistenceWarning.
func IsPersistenceWarning(err error) bool {
	var pw *PersistenceWarning
	return errors.As(err, &pw)
}
