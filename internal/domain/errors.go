package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every failure of a board command matches exactly one.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failed")
)

// Domain errors.
var (
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrEmptyMessage       = errors.New("message cannot be empty")
	ErrInvalidColumn      = errors.New("invalid column")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrUnknownMember      = errors.New("unknown member")
	ErrAttachmentTooLarge = errors.New("attachment too large")
	ErrAttachmentType     = errors.New("attachment type not allowed")
	ErrNoFiles            = errors.New("no files to attach")
	ErrDuplicateComment   = errors.New("duplicate comment id")
	ErrTaskNotFound       = errors.New("task not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrEmptyProjectName   = errors.New("project name cannot be empty")
	ErrInvalidStatus      = errors.New("invalid project status")
	ErrAmbiguousID        = errors.New("ambiguous id prefix")
	ErrUnsupportedSchema  = errors.New("unsupported schema version")
	ErrNotInitialized     = errors.New("flowsync not initialized (run 'flowsync init' first)")
	ErrAlreadyInitialized = errors.New("flowsync already initialized")
	ErrConfigExists       = errors.New("config file already exists")
	ErrEmptyFile          = errors.New("file is empty")
	ErrNoTasksInFile      = errors.New("no tasks found in file")
)

// ValidationError reports bad input. Field names the offending input.
type ValidationError struct {
	Err    error // Specific sentinel, e.g. ErrEmptyTitle
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, reason string, err error) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap exposes both the category and the specific sentinel.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// NotFoundError reports an unknown task, comment or attachment ID.
type NotFoundError struct {
	Err  error
	Kind string // "task", "comment", "attachment", "project"
	ID   string
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(kind, id string, err error) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id, Err: err}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// Unwrap exposes both the category and the specific sentinel.
func (e *NotFoundError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNotFound}
	}
	return []error{ErrNotFound, e.Err}
}

// PersistenceError reports a store load or save failure.
type PersistenceError struct {
	Err error
	Op  string // "load" or "save"
}

// NewPersistenceError creates a PersistenceError.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

// Unwrap exposes the category and the underlying cause.
func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// UserMessage maps an error to a short message suitable for display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		switch {
		case errors.Is(ve, ErrEmptyTitle):
			return "Task title cannot be empty"
		case errors.Is(ve, ErrEmptyMessage):
			return "Comment cannot be empty"
		default:
			return capitalize(ve.Field) + " " + ve.Reason
		}
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return capitalize(nf.Kind) + " not found: " + nf.ID
	}
	if errors.Is(err, ErrPersistence) {
		return "Changes could not be saved; they are kept in memory"
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
