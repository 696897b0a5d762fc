package status

/*
The subset of net/http status codes asyncjson ever produces. Kept here in order to avoid
name collisions between asyncjson's http packages and net/http.
*/

type (
	Code   uint16
	Status string
)

const (
	OK        Code = 200 // RFC 9110, 15.3.1
	NoContent Code = 204 // RFC 9110, 15.3.5

	BadRequest            Code = 400 // RFC 9110, 15.5.1
	NotFound              Code = 404 // RFC 9110, 15.5.5
	MethodNotAllowed      Code = 405 // RFC 9110, 15.5.6
	RequestTimeout        Code = 408 // RFC 9110, 15.5.9
	RequestEntityTooLarge Code = 413 // RFC 9110, 15.5.14
	UnsupportedMediaType  Code = 415 // RFC 9110, 15.5.16

	InternalServerError Code = 500 // RFC 9110, 15.6.1
	ServiceUnavailable  Code = 503 // RFC 9110, 15.6.4
)

// Text returns a text for the HTTP status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case NoContent:
		return "No Content"
	case BadRequest:
		return "Bad Request"
	case NotFound:
		return "Not Found"
	case MethodNotAllowed:
		return "Method Not Allowed"
	case RequestTimeout:
		return "Request Timeout"
	case RequestEntityTooLarge:
		return "Request Entity Too Large"
	case UnsupportedMediaType:
		return "Unsupported Media Type"
	case InternalServerError:
		return "Internal Server Error"
	case ServiceUnavailable:
		return "Service Unavailable"
	default:
		return ""
	}
}

// IsSuccess reports whether the code belongs to the 2xx class.
func IsSuccess(code Code) bool {
	return code >= 200 && code < 300
}
