package handler

import (
	"github.com/indigo-web/asyncjson/delivery"
	"github.com/indigo-web/asyncjson/http"
	"github.com/indigo-web/asyncjson/http/method"
	"github.com/indigo-web/asyncjson/http/status"
	"github.com/indigo-web/asyncjson/jsondoc"
)

// DefaultFragmentMaxSize is the default body size limit for the Fragment handler.
const DefaultFragmentMaxSize = 16384

// FragmentFunc receives a fragment of the raw body text. The text is valid only during
// the call. req.Env tells where the fragment is, and whether it's the last one.
type FragmentFunc func(req *http.Request, fragment *jsondoc.Text)

// Fragment hands the raw body to the application through the delivery strategy, in one
// or in many fragments. The request must be answered until the last fragment's callback
// returns, otherwise it's answered with 500.
type Fragment struct {
	base
	onRequest FragmentFunc
	strategy  delivery.Strategy
}

func NewFragment(path string, fn FragmentFunc, strategy delivery.Strategy) *Fragment {
	if strategy == nil {
		strategy = delivery.SingleShot{}
	}

	f := &Fragment{
		onRequest: fn,
		strategy:  strategy,
	}
	f.base = base{
		gate:             NewGate(path),
		maxContentLength: DefaultFragmentMaxSize,
		registered: func() bool {
			return f.onRequest != nil
		},
	}

	return f
}

func (f *Fragment) SetMethods(methods ...method.Method) *Fragment {
	f.gate.Methods = method.Of(methods...)
	return f
}

func (f *Fragment) SetMaxContentLength(n uint64) *Fragment {
	f.maxContentLength = n
	return f
}

func (f *Fragment) OnRequest(fn FragmentFunc) *Fragment {
	f.onRequest = fn
	return f
}

func (f *Fragment) Admit(req *http.Request) bool {
	return f.admit(req)
}

func (f *Fragment) Body(req *http.Request, chunk []byte, index, total uint64) {
	f.body(req, chunk, index, total)
}

func (f *Fragment) Complete(req *http.Request) {
	if f.onRequest == nil {
		req.Fail(status.ErrNoHandler)
		return
	}

	pending := req.Pending()
	if pending == nil {
		req.Fail(status.ErrEmptyBody)
		return
	}

	if err := pending.Err(); err != nil {
		pending.Release()
		req.Fail(err)
		return
	}

	var (
		fn     = f.onRequest
		seq    *delivery.Sequence
		failed bool
	)

	seq = f.strategy.Deliver(req, pending, func(text *jsondoc.Text, offset, total int) {
		req.Env = http.Environment{
			Offset: offset,
			Total:  total,
			Final:  offset+text.Len() >= total,
		}

		if !recoverCall(req, func() { fn(req, text) }) {
			failed = true
			// nil while the first fragment is delivered, cancelled right after Deliver
			seq.Cancel()
		}
	}, func() {
		if req.Alive() && !req.Answered() {
			req.Log().Warn("fragment handler left the request unanswered")
			req.Fail(status.ErrNoResponse)
		}
	})

	if failed {
		seq.Cancel()
	}

	req.Track(seq)
}

func (f *Fragment) Abandon(req *http.Request) {
	req.Abandon()
}
