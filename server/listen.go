package server

import (
	"crypto/tls"
	"net"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/net/netutil"
)

// Listen binds a TCP listener, accepting at most NET.MaxConns connections at once. If
// auto TLS is enabled, connections are served over TLS.
func (s *Server) Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	if s.cfg.NET.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.cfg.NET.MaxConns)
	}

	if s.tls {
		ln = tls.NewListener(ln, s.autocertConfig())
	}

	return ln, nil
}

func (s *Server) autocertConfig() *tls.Config {
	m := &autocert.Manager{
		Prompt: autocert.AcceptTOS,
	}

	if len(s.domains) > 0 {
		m.HostPolicy = autocert.HostWhitelist(s.domains...)
	}

	cache := cacheDir()
	if err := mkdirIfNotExists(cache); err != nil {
		s.log.WithError(err).Warn("server: auto TLS: not using a cache")
	} else {
		m.Cache = autocert.DirCache(cache)
	}

	return m.TLSConfig()
}

func cacheDir() string {
	const base = "asyncjson-autocert"

	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, base)
	}

	if runtime.GOOS == "windows" {
		return filepath.Join(os.TempDir(), base)
	}

	return filepath.Join(os.Getenv("HOME"), ".cache", base)
}

func mkdirIfNotExists(dir string) error {
	if stat, err := os.Stat(dir); err == nil && stat.IsDir() {
		return nil
	}

	return os.MkdirAll(dir, 0700)
}
