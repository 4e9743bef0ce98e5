package message

// Error codes. These classify failures for logging and tests; the
// wire envelope only carries the message string.
const (
	// CodeInvalidParameter: a required or optional field is missing or
	// has the wrong JSON type. No state was changed.
	CodeInvalidParameter = "invalid-parameter"

	// CodeNotFound: an id did not resolve to a live entity.
	CodeNotFound = "not-found"

	// CodeUnsupported: the entity exists but does not support the
	// requested action (e.g. focusing a non-toplevel view).
	CodeUnsupported = "unsupported-operation"

	// CodeMethodNotFound: no handler is registered under the name.
	CodeMethodNotFound = "method-not-found"
)

// Error is a structured request error. All Error values are
// recoverable, per-request conditions; they are reported to the
// requesting client and never affect other clients.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Envelope returns the wire form of the error.
func (e *Error) Envelope() map[string]any {
	return map[string]any{"result": "error", "error": e.Message}
}

// NewError creates an error with the given code and message.
func NewError(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// ErrInvalidParameter creates an invalid-parameter error.
func ErrInvalidParameter(msg string) *Error {
	return NewError(CodeInvalidParameter, msg)
}

// ErrNotFound creates a not-found error. The message should name the
// entity kind, e.g. "no such view".
func ErrNotFound(msg string) *Error {
	return NewError(CodeNotFound, msg)
}

// ErrUnsupported creates an unsupported-operation error.
func ErrUnsupported(msg string) *Error {
	return NewError(CodeUnsupported, msg)
}

// ErrMethodNotFound creates a method-not-found error.
func ErrMethodNotFound(method string) *Error {
	return NewError(CodeMethodNotFound, "no such method: "+method)
}
