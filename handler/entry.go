package handler

import (
	"github.com/indigo-web/asyncjson/http"
	"github.com/indigo-web/asyncjson/http/method"
	"github.com/indigo-web/asyncjson/http/status"
	"github.com/indigo-web/asyncjson/jsondoc"
)

// DefaultEntryMaxSize is the default body size limit for the Entry handler.
const DefaultEntryMaxSize = 8096

// EntryFunc receives the whole body parsed. The document is valid only during the call.
type EntryFunc func(req *http.Request, doc jsondoc.Document)

// Entry hands the body to the application as a single parsed document.
type Entry struct {
	base
	onRequest EntryFunc
}

func NewEntry(path string, fn EntryFunc) *Entry {
	e := &Entry{
		onRequest: fn,
	}
	e.base = base{
		gate:             NewGate(path),
		maxContentLength: DefaultEntryMaxSize,
		registered: func() bool {
			return e.onRequest != nil
		},
	}

	return e
}

func (e *Entry) SetMethods(methods ...method.Method) *Entry {
	e.gate.Methods = method.Of(methods...)
	return e
}

func (e *Entry) SetMaxContentLength(n uint64) *Entry {
	e.maxContentLength = n
	return e
}

func (e *Entry) OnRequest(fn EntryFunc) *Entry {
	e.onRequest = fn
	return e
}

func (e *Entry) Admit(req *http.Request) bool {
	return e.admit(req)
}

func (e *Entry) Body(req *http.Request, chunk []byte, index, total uint64) {
	e.body(req, chunk, index, total)
}

func (e *Entry) Complete(req *http.Request) {
	if e.onRequest == nil {
		req.Fail(status.ErrNoHandler)
		return
	}

	pending := req.Pending()
	if pending == nil {
		req.Fail(status.ErrEmptyBody)
		return
	}

	defer pending.Release()

	if err := pending.Err(); err != nil {
		req.Fail(err)
		return
	}

	doc, err := jsondoc.Parse(pending.Bytes())
	if err != nil {
		req.Fail(err)
		return
	}

	req.Env = http.Environment{Total: len(pending.Bytes()), Final: true}
	if !recoverCall(req, func() { e.onRequest(req, doc) }) {
		return
	}

	if req.Alive() && !req.Answered() {
		req.Log().Warn("entry handler left the request unanswered")
		req.Fail(status.ErrNoResponse)
	}
}

func (e *Entry) Abandon(req *http.Request) {
	req.Abandon()
}
