package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a BeatGenius error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrVaultEmpty       ErrorCode = "VAULT_EMPTY"       // 409
	ErrParse            ErrorCode = "PARSE_ERROR"       // 422
	ErrIO               ErrorCode = "IO_ERROR"          // 422
	ErrImportInvalid    ErrorCode = "IMPORT_INVALID"    // 422
	ErrGenerationFailed ErrorCode = "GENERATION_FAILED" // 502
	ErrEnrichmentFailed ErrorCode = "ENRICHMENT_FAILED" // 502, logged only
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// Error represents a structured error with code, status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing entity.
func NewNotFound(identifier string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewVaultEmpty creates a 409 error for operations that need at least one
// saved recipe.
func NewVaultEmpty() *Error {
	return &Error{
		Code:    ErrVaultEmpty,
		Status:  409,
		Message: "vault is empty; save a recipe first",
	}
}

// NewParse creates a 422 error for when no plugin records could be parsed.
// The message is user-facing and tells the user to check their input.
func NewParse() *Error {
	return &Error{
		Code:    ErrParse,
		Status:  422,
		Message: "no plugins found — check the pasted list or uploaded file format",
	}
}

// NewIO creates a 422 error for a file that could not be read.
func NewIO(path string, err error) *Error {
	return &Error{
		Code:    ErrIO,
		Status:  422,
		Message: fmt.Sprintf("could not read file: %v", err),
		Details: map[string]any{"path": path},
	}
}

// NewImportInvalid creates a 422 error for a rig bundle missing required fields.
func NewImportInvalid(missing []string) *Error {
	return &Error{
		Code:    ErrImportInvalid,
		Status:  422,
		Message: fmt.Sprintf("rig bundle missing required fields: %v", missing),
		Details: map[string]any{"missing_fields": missing},
	}
}

// NewGenerationFailed creates a 502 error for a failed or malformed AI response.
// The message is a retry-style hint; recipes and history stay unchanged.
func NewGenerationFailed(err error) *Error {
	e := &Error{
		Code:    ErrGenerationFailed,
		Status:  502,
		Message: "couldn't think of any beats right now — try again in a second",
	}
	if err != nil {
		e.Details = map[string]any{"cause": err.Error()}
	}
	return e
}

// NewEnrichmentFailed creates a 502 error for the post-save parameter fetch.
// Never surfaced to the user; the base save already succeeded.
func NewEnrichmentFailed(err error) *Error {
	e := &Error{
		Code:    ErrEnrichmentFailed,
		Status:  502,
		Message: "parameter enrichment failed",
	}
	if err != nil {
		e.Details = map[string]any{"cause": err.Error()}
	}
	return e
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is (or wraps) an Error with the given code.
func Is(err error, code ErrorCode) bool {
	var bgErr *Error
	if stderrors.As(err, &bgErr) {
		return bgErr.Code == code
	}
	return false
}
