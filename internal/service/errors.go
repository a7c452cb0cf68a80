package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure so the transport layer can pick a
// status code without inspecting error strings.
type Kind int

const (
	// KindInternal is an unexpected collaborator failure.
	KindInternal Kind = iota
	// KindValidation means the request itself is malformed.
	KindValidation
	// KindUnauthenticated means the caller has no valid identity.
	KindUnauthenticated
	// KindForbidden means the caller's identity lacks the right.
	KindForbidden
	// KindNotFound means the addressed record does not exist.
	KindNotFound
	// KindConflict means the record's current state forbids the operation.
	KindConflict
)

// Error is a classified service error.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil && e.msg != "" {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	if e.err != nil {
		return e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the classification.
func (e *Error) Kind() Kind { return e.kind }

// KindOf extracts the classification from any error chain; unclassified
// errors are internal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.kind
	}
	return KindInternal
}

func errValidation(format string, args ...any) error {
	return &Error{kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

func errUnauthenticated(err error) error {
	return &Error{kind: KindUnauthenticated, err: err}
}

func errForbidden(format string, args ...any) error {
	return &Error{kind: KindForbidden, msg: fmt.Sprintf(format, args...)}
}

func errNotFound(err error) error {
	return &Error{kind: KindNotFound, err: err}
}

func errConflict(err error) error {
	return &Error{kind: KindConflict, err: err}
}

func errInternal(msg string, err error) error {
	return &Error{kind: KindInternal, msg: msg, err: err}
}
