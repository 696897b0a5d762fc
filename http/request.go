package http

import (
	"github.com/indigo-web/asyncjson/config"
	"github.com/indigo-web/asyncjson/delivery"
	"github.com/indigo-web/asyncjson/http/method"
	"github.com/indigo-web/asyncjson/http/status"
	"github.com/indigo-web/asyncjson/internal/alloc"
	"github.com/indigo-web/asyncjson/internal/body"
	"github.com/sirupsen/logrus"
)

// Answer is what a request is finally answered with. Response is nil for bare status
// answers, which are sent with the transport's default body.
type Answer struct {
	Code     status.Code
	Response *Response
}

// Environment is the state of a fragment delivery.
type Environment struct {
	// Offset is the position of the current fragment in the body.
	Offset int
	// Total is the body's length.
	Total int
	// Final is set when the current fragment is the last one.
	Final bool
}

// Request represents a single HTTP exchange. It's owned by the event loop: its methods
// must be called only from the loop, which every handler callback is called from.
type Request struct {
	// ID is a random identifier, unique enough to correlate log records.
	ID string
	// Method is an enum representing the request method.
	Method method.Method
	// Path is the request path without query.
	Path string
	// ContentType is the raw Content-Type header value.
	ContentType string
	// ContentLength is the declared body length. Zero if unknown.
	ContentLength uint64
	// Remote is the client's address.
	Remote string
	// Env is the state of the current fragment delivery.
	Env Environment
	// Data is arbitrary per-request state owned by the application.
	Data any

	cfg       *config.Config
	budget    *alloc.Budget
	log       logrus.FieldLogger
	reply     func(Answer)
	pending   *body.Pending
	seq       *delivery.Sequence
	answered  bool
	abandoned bool
}

// NewRequest returns a request, answered via the reply callback. Bodies accumulated for
// the request are allocated from the budget.
func NewRequest(
	cfg *config.Config, budget *alloc.Budget, log logrus.FieldLogger, id string, reply func(Answer),
) *Request {
	return &Request{
		ID:     id,
		Method: method.Unknown,
		cfg:    cfg,
		budget: budget,
		log:    log.WithField("request", id),
		reply:  reply,
	}
}

// Log returns a logger annotated with the request ID.
func (r *Request) Log() logrus.FieldLogger {
	return r.log
}

// Accumulate starts a new body accumulation with the size limit. The buffer itself is
// allocated only on the first delivery.
func (r *Request) Accumulate(maxAllowed uint64) *body.Pending {
	r.pending = body.NewPending(maxAllowed, r.budget)
	return r.pending
}

// Pending returns the body being accumulated, if any.
func (r *Request) Pending() *body.Pending {
	return r.pending
}

// Track binds an in-flight delivery to the request, so it's cancelled if the request is
// abandoned.
func (r *Request) Track(seq *delivery.Sequence) {
	r.seq = seq
}

// Abandon is called when nobody waits for the answer anymore (e.g. the client has gone.)
// In-flight delivery is cancelled and the body is released.
func (r *Request) Abandon() {
	if r.abandoned {
		return
	}

	r.abandoned = true
	r.seq.Cancel()
	if r.pending != nil {
		r.pending.Release()
	}
}

// Alive reports whether the request wasn't abandoned.
func (r *Request) Alive() bool {
	return !r.abandoned
}

// Answered reports whether an answer was already sent.
func (r *Request) Answered() bool {
	return r.answered
}

// NewResponse returns an empty JSON response, configured for the request.
func (r *Request) NewResponse() *Response {
	return NewResponse(r.cfg.Response.Buffer)
}

// Respond answers with the response. A response with an empty payload can't be sent,
// so in this case the request is answered with 500 instead.
func (r *Request) Respond(resp *Response) {
	resp.SetLength()
	if !resp.Valid() {
		r.log.Warn("responding with an empty payload")
		r.answer(Answer{Code: status.CodeOf(status.ErrEmptyResponse)})
		return
	}

	r.answer(Answer{Code: resp.StatusCode(), Response: resp})
}

// Send answers with a bare status code.
func (r *Request) Send(code status.Code) {
	r.answer(Answer{Code: code})
}

// Fail answers with the status code the error carries.
func (r *Request) Fail(err error) {
	r.log.WithError(err).Debug("request failed")
	r.Send(status.CodeOf(err))
}

func (r *Request) answer(a Answer) {
	switch {
	case r.abandoned:
		return
	case r.answered:
		r.log.WithField("code", a.Code).Warn("the request is already answered, ignoring")
		return
	}

	r.answered = true
	r.reply(a)
}
