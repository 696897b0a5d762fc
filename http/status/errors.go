package status

import "errors"

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest           = NewError(BadRequest, "bad request")
	ErrEmptyBody            = NewError(BadRequest, "request body is empty or missing")
	ErrMalformedJSON        = NewError(BadRequest, "request body is not a valid JSON text")
	ErrNotFound             = NewError(NotFound, "not found")
	ErrBodyTooLarge         = NewError(RequestEntityTooLarge, "request body is too large")
	ErrUnsupportedMediaType = NewError(UnsupportedMediaType, "unsupported media type")
	ErrInternalServerError  = NewError(InternalServerError, "internal server error")
	ErrNoHandler            = NewError(InternalServerError, "no request handler registered")
	ErrEmptyResponse        = NewError(InternalServerError, "response payload is empty")
	ErrNoResponse           = NewError(InternalServerError, "request left unanswered")
	ErrShutdown             = NewError(ServiceUnavailable, "server is shutting down")
	ErrClientGone           = NewError(BadRequest, "client has gone before the exchange completed")
)

// CodeOf returns the status code carried by err, if any is wrapped inside. Otherwise
// InternalServerError is returned, as an unknown error is a server-side failure.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}
