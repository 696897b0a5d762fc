// Package server exposes the JSON handlers over HTTP. The HTTP engine itself is net/http:
// the server only adapts its requests into partial body deliveries, answered from the
// event loop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"

	"github.com/indigo-web/asyncjson/config"
	"github.com/indigo-web/asyncjson/delivery"
	"github.com/indigo-web/asyncjson/handler"
	"github.com/indigo-web/asyncjson/internal/alloc"
	"github.com/indigo-web/asyncjson/internal/loop"
	"github.com/sirupsen/logrus"
)

type Option func(s *Server)

// WithLogger replaces the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithAutoTLS makes Listen serve TLS with certificates obtained via ACME. Only the
// listed domains are allowed, if any.
func WithAutoTLS(domains ...string) Option {
	return func(s *Server) {
		s.tls = true
		s.domains = domains
	}
}

// Server dispatches requests to the handlers. Handlers must be registered before the
// server is started.
type Server struct {
	cfg      *config.Config
	log      logrus.FieldLogger
	loop     *loop.Loop
	budget   *alloc.Budget
	strategy delivery.Strategy
	handlers []handler.Handler
	tls      bool
	domains  []string
}

func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		log:    logrus.StandardLogger(),
		budget: alloc.NewBudget(cfg.JSON.MemoryLimit),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.loop = loop.New(cfg.NET.LoopQueue, s.log)
	strategy, err := delivery.New(cfg.Delivery, s.loop)
	if err != nil {
		return nil, err
	}

	s.strategy = strategy
	return s, nil
}

func validate(cfg *config.Config) error {
	switch {
	case cfg.NET.ReadBufferSize <= 0:
		return fmt.Errorf("server: read buffer size must be positive, got %d", cfg.NET.ReadBufferSize)
	case cfg.NET.WriteBufferSize <= 0:
		return fmt.Errorf("server: write buffer size must be positive, got %d", cfg.NET.WriteBufferSize)
	case cfg.NET.LoopQueue < 0:
		return fmt.Errorf("server: loop queue size must not be negative, got %d", cfg.NET.LoopQueue)
	}

	return nil
}

// Handle registers the handler. Handlers are tried in the order of registration, the
// first one admitting a request handles it.
func (s *Server) Handle(h handler.Handler) *Server {
	s.handlers = append(s.handlers, h)
	return s
}

// Entry registers a new Entry handler, limited by the config.
func (s *Server) Entry(path string, fn handler.EntryFunc) *handler.Entry {
	h := handler.NewEntry(path, fn).SetMaxContentLength(s.cfg.JSON.EntryMaxSize)
	s.Handle(h)
	return h
}

// Fragment registers a new Fragment handler, limited by the config and delivering via
// the configured strategy.
func (s *Server) Fragment(path string, fn handler.FragmentFunc) *handler.Fragment {
	h := handler.NewFragment(path, fn, s.strategy).SetMaxContentLength(s.cfg.JSON.FragmentMaxSize)
	s.Handle(h)
	return h
}

// Strategy returns the configured delivery strategy, bound to the server's event loop.
func (s *Server) Strategy() delivery.Strategy {
	return s.strategy
}

// ListenAndServe is Listen followed by Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := s.Listen(addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve runs the event loop and serves the listener until ctx is done. After that, the
// server stops accepting new connections and awaits in-flight exchanges for at most
// NET.ShutdownTimeout. Serve must be called at most once.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	loopCtx, stopLoop := context.WithCancel(context.Background())
	loopDone := make(chan error, 1)
	go func() {
		loopDone <- s.loop.Run(loopCtx)
	}()

	errlog := s.errorLog()
	defer errlog.Close()

	srv := &nethttp.Server{
		Handler:      s,
		ReadTimeout:  s.cfg.NET.ReadTimeout,
		WriteTimeout: s.cfg.NET.WriteTimeout,
		ErrorLog:     errlog.Logger,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	s.log.WithField("addr", ln.Addr().String()).Info("server: listening")

	var err error
	select {
	case err = <-serveErr:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.NET.ShutdownTimeout)
		err = srv.Shutdown(shutdownCtx)
		cancel()
		<-serveErr
	}

	stopLoop()
	<-loopDone
	s.log.Info("server: stopped")

	if errors.Is(err, nethttp.ErrServerClosed) {
		return nil
	}

	return err
}
