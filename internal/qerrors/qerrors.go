package qerrors

import "errors"

// NotFoundError is the kind shared by every "target absent" error, so callers can match any of
// them with errors.Is(err, NotFoundError).
var NotFoundError = errors.New("not found")

var (
	// Course errors
	CourseNotFoundError = notFound("course not found")

	// Curriculum errors
	ModuleNotFoundError  = notFound("module not found")
	ContentNotFoundError = notFound("content not found")
	InvalidParentError   = errors.New("content must belong to an existing module of this course")

	// Workflow errors
	ValidationFailedError = errors.New("validation failed")
	EditInProgressError   = errors.New("another add or edit is already in progress")
	NoActiveEditError     = errors.New("nothing is being added or edited")
)

type kindError struct {
	msg  string
	kind error
}

func notFound(msg string) error {
	return &kindError{msg: msg, kind: NotFoundError}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
