package apperror

import "errors"

// Kind classifies an application error into one of the failure families the
// API exposes. Every kind maps to exactly one HTTP status code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindDatabase
)

var statusByKind = map[Kind]int{
	KindInternal:   500,
	KindValidation: 400,
	KindNotFound:   404,
	KindDatabase:   500,
}

// Error carries a short client-facing message plus an optional detail string.
// The wrapped cause is kept for logs only and is never serialized.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	if code, ok := statusByKind[e.Kind]; ok {
		return code
	}
	return 500
}

func New(kind Kind, message, detail string) *Error {
	return &Error{Kind: kind, Message: message, Detail: detail}
}

// Validation reports invalid client input (400).
func Validation(message, detail string) *Error {
	return &Error{Kind: KindValidation, Message: message, Detail: detail}
}

// NotFound reports a missing resource (404).
func NotFound(message, detail string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Detail: detail}
}

// Database reports a store failure surfaced after retries were exhausted.
// The cause's text goes into the detail string, matching the error contract.
func Database(message string, err error) *Error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &Error{Kind: KindDatabase, Message: message, Detail: detail, Err: err}
}

// KindOf extracts the kind from err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
