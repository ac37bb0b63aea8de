package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable failure codes surfaced to API clients. HTTP handlers map these to
// status codes; everything else is treated as an internal error.
const (
	CodePromptRequired              = "PROMPT_REQUIRED"
	CodeChannelIDsRequired          = "CHANNEL_IDS_REQUIRED"
	CodeTemplateNotFound            = "TEMPLATE_NOT_FOUND"
	CodeTemplateAccessDenied        = "TEMPLATE_ACCESS_DENIED"
	CodeTemplateNameAndBodyRequired = "TEMPLATE_NAME_AND_BODY_REQUIRED"
	CodePostNotFound                = "POST_NOT_FOUND"
	CodeSessionNotFound             = "SESSION_NOT_FOUND"
	CodeSessionAccessDenied         = "SESSION_ACCESS_DENIED"
	CodeSuggestionNotFound          = "SUGGESTION_NOT_FOUND"
	CodeSuggestionAccessDenied      = "SUGGESTION_ACCESS_DENIED"
	CodeSuggestionAlreadyAccepted   = "SUGGESTION_ALREADY_ACCEPTED"
	CodeMissingPlaceholderValues    = "MISSING_PLACEHOLDER_VALUES"
	CodeGenerationFailed            = "GENERATION_FAILED"
)

var statusByCode = map[string]int{
	CodePromptRequired:              http.StatusBadRequest,
	CodeChannelIDsRequired:          http.StatusBadRequest,
	CodeTemplateNotFound:            http.StatusNotFound,
	CodeTemplateAccessDenied:        http.StatusForbidden,
	CodeTemplateNameAndBodyRequired: http.StatusBadRequest,
	CodePostNotFound:                http.StatusNotFound,
	CodeSessionNotFound:             http.StatusNotFound,
	CodeSessionAccessDenied:         http.StatusForbidden,
	CodeSuggestionNotFound:          http.StatusNotFound,
	CodeSuggestionAccessDenied:      http.StatusForbidden,
	CodeSuggestionAlreadyAccepted:   http.StatusBadRequest,
	CodeMissingPlaceholderValues:    http.StatusBadRequest,
	CodeGenerationFailed:            http.StatusInternalServerError,
}

// Failure is a typed error with a stable code. The Cause, when present, is
// preserved for diagnostics but never required for code matching.
type Failure struct {
	Code    string
	Message string
	Cause   error
}

func (f *Failure) Error() string {
	if f.Message == "" {
		return f.Code
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

func (f *Failure) Unwrap() error { return f.Cause }

// Status returns the HTTP status associated with the failure code,
// defaulting to 500 for unmapped codes.
func (f *Failure) Status() int {
	if s, ok := statusByCode[f.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Fail builds a Failure with no underlying cause.
func Fail(code, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

// Failf builds a Failure with a formatted message.
func Failf(code, format string, args ...any) *Failure {
	return &Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapFail builds a Failure around an upstream cause, keeping the cause's
// message visible for diagnostics.
func WrapFail(code string, cause error) *Failure {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &Failure{Code: code, Message: msg, Cause: cause}
}

// AsFailure extracts a Failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// IsCode reports whether err carries the given failure code.
func IsCode(err error, code string) bool {
	if f, ok := AsFailure(err); ok {
		return f.Code == code
	}
	return false
}
