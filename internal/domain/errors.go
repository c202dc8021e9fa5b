package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrBadRequest     = errors.New("bad request")
	ErrAlreadyUsed    = errors.New("already used")
	ErrDeliveryFailed = errors.New("delivery failed")
)

// Error pairs a caller-facing message with a sentinel kind. Error()
// returns the message verbatim for the response envelope, while
// errors.Is still matches the kind through Unwrap.
type Error struct {
	kind error
	msg  string
}

func NewError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }
