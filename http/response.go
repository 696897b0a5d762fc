package http

import (
	"io"

	"github.com/indigo-web/asyncjson/config"
	"github.com/indigo-web/asyncjson/http/mime"
	"github.com/indigo-web/asyncjson/http/status"
	"github.com/indigo-web/asyncjson/internal/window"
	"github.com/indigo-web/asyncjson/jsondoc"
)

// Response is a JSON response. The payload is generated once into the Root text, and
// then drained by the transport window by window via Fill (or Read.)
//
// The response is transmittable only if its payload isn't empty: an empty response
// is never sent with its own status code.
type Response struct {
	text        *jsondoc.Text
	code        status.Code
	contentType mime.MIME
	length      int
	sent        int
	valid       bool
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK
// and application/json content-type.
// NOTE: it's recommended to use Request.Respond() method inside of handlers, if there's no
// clear reason otherwise
func NewResponse(cfg config.Buffer) *Response {
	return &Response{
		text:        jsondoc.NewText(cfg),
		code:        status.OK,
		contentType: mime.JSON,
	}
}

// Root returns the text the payload must be written into.
func (r *Response) Root() *jsondoc.Text {
	return r.text
}

// Code sets a Response code.
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	return r
}

// StatusCode returns the Response code.
func (r *Response) StatusCode() status.Code {
	return r.code
}

// ContentType returns the Content-Type header value.
func (r *Response) ContentType() mime.MIME {
	return r.contentType
}

// TryJSON serializes the model into the payload.
func (r *Response) TryJSON(model any) (*Response, error) {
	return r, r.text.Encode(model)
}

// SetLength completes the payload generation. The response becomes valid only if
// the payload isn't empty.
func (r *Response) SetLength() int {
	r.length = r.text.Len()
	r.valid = r.length > 0
	return r.length
}

// Valid reports whether the response may be transmitted.
func (r *Response) Valid() bool {
	return r.valid
}

// Len returns the payload length, fixed by the last SetLength call.
func (r *Response) Len() int {
	return r.length
}

// Sent returns how many bytes were already drained.
func (r *Response) Sent() int {
	return r.sent
}

// Fill copies the next window of the payload into dst. The whole payload is offered to
// a window sink, which skips the already sent part and copies at most len(dst) bytes.
// Returns the number of bytes actually copied, which is less than len(dst) only at the
// payload's end.
func (r *Response) Fill(dst []byte) int {
	sink := window.New(dst, r.sent, len(dst))
	_, _ = sink.Write(r.text.Bytes()[:r.length])
	r.sent += sink.Written()

	return sink.Written()
}

// Read implements io.Reader over Fill.
func (r *Response) Read(p []byte) (n int, err error) {
	if r.sent >= r.length {
		return 0, io.EOF
	}

	return r.Fill(p), nil
}
