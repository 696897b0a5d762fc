package server

import (
	"errors"
	"io"
	"log"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/asyncjson/handler"
	"github.com/indigo-web/asyncjson/http"
	"github.com/indigo-web/asyncjson/http/method"
	"github.com/indigo-web/asyncjson/http/mime"
	"github.com/indigo-web/asyncjson/http/status"
	"github.com/sirupsen/logrus"
)

// ServeHTTP implements net/http.Handler. The request is admitted, its body is read and
// delivered to the handler on the event loop, and the answer is awaited. If the client
// goes away first, the handler is told to abandon the request.
func (s *Server) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	begin := time.Now()
	answers := make(chan http.Answer, 1)
	req := http.NewRequest(s.cfg, s.budget, s.log, uniuri.New(), func(a http.Answer) {
		answers <- a
	})
	req.Method = method.Parse(r.Method)
	req.Path = r.URL.Path
	req.ContentType = r.Header.Get("Content-Type")
	req.Remote = r.RemoteAddr
	if r.ContentLength > 0 {
		req.ContentLength = uint64(r.ContentLength)
	}

	code := s.exchange(w, r, req, answers)
	req.Log().WithFields(logrus.Fields{
		"method":   r.Method,
		"path":     req.Path,
		"code":     code,
		"duration": time.Since(begin),
	}).Info("served")
}

func (s *Server) exchange(
	w nethttp.ResponseWriter, r *nethttp.Request, req *http.Request, answers <-chan http.Answer,
) status.Code {
	var h handler.Handler
	admitted := s.loop.Do(func() {
		for _, candidate := range s.handlers {
			if candidate.Admit(req) {
				h = candidate
				return
			}
		}
	})

	switch {
	case !admitted:
		return s.write(w, http.Answer{Code: status.CodeOf(status.ErrShutdown)})
	case h == nil:
		return s.write(w, http.Answer{Code: status.CodeOf(status.ErrNotFound)})
	}

	if err := s.readBody(r.Body, req, h); err != nil {
		req.Log().WithError(err).Debug("reading the request body")
		if errors.Is(err, status.ErrShutdown) {
			return s.write(w, http.Answer{Code: status.CodeOf(err)})
		}

		s.loop.Post(func() {
			h.Abandon(req)
		})

		return status.CodeOf(err)
	}

	if !s.loop.Post(func() { h.Complete(req) }) {
		return s.write(w, http.Answer{Code: status.CodeOf(status.ErrShutdown)})
	}

	select {
	case answer := <-answers:
		return s.write(w, answer)
	case <-r.Context().Done():
		s.loop.Post(func() {
			h.Abandon(req)
		})

		return status.CodeOf(status.ErrClientGone)
	case <-s.loop.Stopped():
		return s.write(w, http.Answer{Code: status.CodeOf(status.ErrShutdown)})
	}
}

// readBody reads the body window by window, delivering every window on the loop. The
// reading stops early as soon as the handler won't store the body anyway.
func (s *Server) readBody(body io.Reader, req *http.Request, h handler.Handler) error {
	total := req.ContentLength
	window := make([]byte, s.cfg.NET.ReadBufferSize)

	for index := uint64(0); index < total; {
		n, err := body.Read(window[:min(uint64(len(window)), total-index)])
		if n > 0 {
			var discarding bool
			chunk, offset := window[:n], index
			delivered := s.loop.Do(func() {
				h.Body(req, chunk, offset, total)
				discarding = handler.Discarding(req)
			})

			switch {
			case !delivered:
				return status.ErrShutdown
			case discarding:
				return nil
			}

			index += uint64(n)
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF) && index == total:
			return nil
		default:
			return errors.Join(status.ErrClientGone, err)
		}
	}

	return nil
}

func (s *Server) write(w nethttp.ResponseWriter, a http.Answer) status.Code {
	header := w.Header()

	if a.Response == nil {
		if a.Code == status.NoContent {
			w.WriteHeader(int(a.Code))
			return a.Code
		}

		text := string(status.Text(a.Code))
		header.Set("Content-Type", mime.Plain)
		header.Set("Content-Length", strconv.Itoa(len(text)))
		w.WriteHeader(int(a.Code))
		_, _ = io.WriteString(w, text)
		return a.Code
	}

	resp := a.Response
	header.Set("Content-Type", resp.ContentType())
	header.Set("Content-Length", strconv.Itoa(resp.Len()))
	w.WriteHeader(int(resp.StatusCode()))

	window := make([]byte, s.cfg.NET.WriteBufferSize)
	for {
		n := resp.Fill(window)
		if n == 0 {
			break
		}

		if _, err := w.Write(window[:n]); err != nil {
			s.log.WithError(err).Debug("writing the response")
			break
		}
	}

	return resp.StatusCode()
}

type errorLog struct {
	*log.Logger
	io.Closer
}

// errorLog redirects net/http's internal errors into the logger.
func (s *Server) errorLog() errorLog {
	type levelWriter interface {
		WriterLevel(level logrus.Level) *io.PipeWriter
	}

	if lw, ok := s.log.(levelWriter); ok {
		w := lw.WriterLevel(logrus.WarnLevel)
		return errorLog{Logger: log.New(w, "", 0), Closer: w}
	}

	return errorLog{Logger: log.New(io.Discard, "", 0), Closer: io.NopCloser(nil)}
}
