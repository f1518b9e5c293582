// Package apperr defines the error kinds returned by the entry and tag services.
//
// Callers branch on the kind with errors.Is against the sentinels:
//
//	if errors.Is(err, apperr.ErrEntryNotFound) {
//	    ...
//	}
//
// or read it directly with CodeOf.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error kind.
type Code string

const (
	CodeInvalidTag        Code = "INVALID_TAG"
	CodeMissingTagService Code = "MISSING_TAG_SERVICE"
	CodeInvalidEntryType  Code = "INVALID_ENTRY_TYPE"
	CodeEntryNotFound     Code = "ENTRY_NOT_FOUND"
	CodeTagNotFound       Code = "TAG_NOT_FOUND"
	CodeTagNameExists     Code = "TAG_NAME_EXISTS"
	CodeInvalidInput      Code = "INVALID_INPUT"
	CodeRetrievalFailed   Code = "RETRIEVAL_FAILED"
	CodeUpdateFailed      Code = "UPDATE_FAILED"
	CodeOperationFailed   Code = "OPERATION_FAILED"
)

// HTTPStatus maps validation and not-found kinds to 4xx and storage failures to 5xx.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeEntryNotFound, CodeTagNotFound:
		return http.StatusNotFound
	case CodeTagNameExists:
		return http.StatusConflict
	case CodeInvalidTag, CodeInvalidEntryType, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeMissingTagService:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is a typed service error carrying its kind and the wrapped cause.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithCause returns a copy of e wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// WithDetails returns a copy of e carrying details for the client.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, cause: e.cause}
}

// Sentinels for errors.Is.
var (
	ErrInvalidTag        = &Error{Code: CodeInvalidTag, Message: "one or more tags do not exist"}
	ErrMissingTagService = &Error{Code: CodeMissingTagService, Message: "tags supplied but no tag service configured"}
	ErrInvalidEntryType  = &Error{Code: CodeInvalidEntryType, Message: "entry type does not match"}
	ErrEntryNotFound     = &Error{Code: CodeEntryNotFound, Message: "entry not found"}
	ErrTagNotFound       = &Error{Code: CodeTagNotFound, Message: "tag not found"}
	ErrTagNameExists     = &Error{Code: CodeTagNameExists, Message: "tag name already exists"}
	ErrInvalidInput      = &Error{Code: CodeInvalidInput, Message: "invalid input"}
	ErrRetrievalFailed   = &Error{Code: CodeRetrievalFailed, Message: "retrieval failed"}
	ErrUpdateFailed      = &Error{Code: CodeUpdateFailed, Message: "update failed"}
	ErrOperationFailed   = &Error{Code: CodeOperationFailed, Message: "operation failed"}
)

// New builds an error of the given kind with a custom message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap builds an error of the given kind around cause. The cause message is kept for diagnostics.
func Wrap(code Code, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, cause: cause}
}

// Reclassify builds an error of the given kind from err. A typed err loses its own kind
// so the result matches exactly one sentinel; its message and details are kept.
func Reclassify(code Code, msg string, err error) *Error {
	var typed *Error
	if !errors.As(err, &typed) {
		return Wrap(code, msg, err)
	}
	return &Error{Code: code, Message: msg, Details: typed.Details, cause: errors.New(err.Error())}
}

// InvalidInput is a shortcut for request validation failures.
func InvalidInput(msg string) *Error {
	return New(CodeInvalidInput, msg)
}

// CodeOf returns the kind of err, or CodeOperationFailed for untyped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeOperationFailed
}
