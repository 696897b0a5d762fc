// Package handler implements JSON request handlers. A handler admits a request, collects
// its body from partial deliveries, and hands it to the application once complete.
//
// Every method is called from the event loop.
package handler

import (
	"fmt"
	"strings"

	"github.com/indigo-web/asyncjson/http"
	"github.com/indigo-web/asyncjson/http/method"
	"github.com/indigo-web/asyncjson/http/mime"
	"github.com/indigo-web/asyncjson/http/status"
)

type Handler interface {
	// Admit decides whether the request is handled by the handler, before any of the
	// body is read.
	Admit(req *http.Request) bool
	// Body accepts a piece of the body, starting at index of a body, which is total
	// bytes long.
	Body(req *http.Request, chunk []byte, index, total uint64)
	// Complete is called once all the body was delivered.
	Complete(req *http.Request)
	// Abandon is called when the request can't be answered anymore.
	Abandon(req *http.Request)
}

// Gate admits requests by method, path and content type.
type Gate struct {
	// Path is a path prefix. Both the path itself and any of its sub-paths are admitted.
	// Empty path admits everything, whereas the root path "/" admits only itself.
	Path    string
	Methods method.Set
}

func NewGate(path string) Gate {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}

	return Gate{
		Path:    path,
		Methods: method.Mutating,
	}
}

// Admit reports whether the request passes. Only application/json bodies do.
func (g Gate) Admit(m method.Method, path, contentType string) bool {
	if !g.Methods.Has(m) {
		return false
	}

	if len(g.Path) > 0 && path != g.Path && !strings.HasPrefix(path, g.Path+"/") {
		return false
	}

	return mime.Is(mime.JSON, contentType)
}

// base is what both handler kinds share: the gate, the size limit and the body
// accumulation.
type base struct {
	gate             Gate
	maxContentLength uint64
	registered       func() bool
}

func (b *base) admit(req *http.Request) bool {
	if !b.registered() || !b.gate.Admit(req.Method, req.Path, req.ContentType) {
		return false
	}

	req.Accumulate(b.maxContentLength)
	return true
}

func (b *base) body(req *http.Request, chunk []byte, index, total uint64) {
	if !b.registered() {
		return
	}

	if pending := req.Pending(); pending != nil {
		pending.Deliver(chunk, index, total)
	}
}

// Discarding reports whether the rest of the body won't be stored anyway.
func Discarding(req *http.Request) bool {
	pending := req.Pending()
	return pending != nil && pending.Discarding()
}

// recoverCall calls the application callback. If it panics, the request is answered
// with 500 Internal Server Error and false is returned.
func recoverCall(req *http.Request, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			req.Log().WithField("panic", fmt.Sprint(r)).Error("handler: recovered from a panic in the callback")
			req.Fail(status.ErrInternalServerError)
			ok = false
		}
	}()

	fn()
	return true
}
