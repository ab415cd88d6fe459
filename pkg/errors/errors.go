package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHistory is matched by every HistoryError.
	ErrNoHistory = errors.New("no history entry available")
	// ErrClipboardUnavailable is matched by every ClipboardError.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)

// ParseError represents a YAML or JSON decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures document or configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// HistoryError reports an undo or redo request with nothing to move to.
type HistoryError struct {
	Direction string
}

// NewHistoryError constructs a HistoryError for "undo" or "redo".
func NewHistoryError(direction string) error {
	return &HistoryError{Direction: direction}
}

func (e *HistoryError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("history error: nothing to %s", e.Direction)
}

// Unwrap returns ErrNoHistory.
func (e *HistoryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return ErrNoHistory
}

// DecodeError indicates an image reference could not be decoded.
type DecodeError struct {
	Ref string
	Err error
}

// NewDecodeError constructs a DecodeError. Long references such as data URIs are abbreviated.
func NewDecodeError(ref string, err error) error {
	return &DecodeError{Ref: abbreviate(ref, 48), Err: err}
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Ref != "" {
		return fmt.Sprintf("decode error [%s]: %v", e.Ref, e.Err)
	}
	return fmt.Sprintf("decode error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StorageError wraps a persistence read or write failure.
type StorageError struct {
	Op  string
	Key string
	Err error
}

// NewStorageError constructs a StorageError.
func NewStorageError(op, key string, err error) error {
	return &StorageError{Op: op, Key: key, Err: err}
}

func (e *StorageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error.
func (e *StorageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ClipboardError indicates the image could not be placed on the clipboard.
type ClipboardError struct {
	Err error
}

// NewClipboardError constructs a ClipboardError.
func NewClipboardError(err error) error {
	return &ClipboardError{Err: err}
}

func (e *ClipboardError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("clipboard error: %v", e.Err)
	}
	return "clipboard error: unavailable"
}

// Is matches ErrClipboardUnavailable.
func (e *ClipboardError) Is(target error) bool {
	return target == ErrClipboardUnavailable
}

// Unwrap exposes the underlying error.
func (e *ClipboardError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func abbreviate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
