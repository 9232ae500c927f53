package backend

import "errors"

// The backend reports failures as free-text messages, not structured codes.
// The only distinction the client draws is whether the request reached the
// backend at all.
const (
	KindTransport = "transport"
	KindRejected  = "rejected"
)

type Error struct {
	Kind    string
	Status  int // HTTP status for rejected calls, 0 for transport failures
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: err.Error()}
}

func rejectedError(status int, message string) *Error {
	return &Error{Kind: KindRejected, Status: status, Message: message}
}

// IsRejected reports whether the backend received and refused the request.
func IsRejected(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == KindRejected
}

// StatusOf returns the backend's HTTP status for a rejected call, or 0.
func StatusOf(err error) int {
	var be *Error
	if errors.As(err, &be) {
		return be.Status
	}
	return 0
}
