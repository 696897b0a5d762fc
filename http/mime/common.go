package mime

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

type MIME = string

const (
	JSON  MIME = "application/json"
	Plain MIME = "text/plain"
)

// Complies returns whether two MIMEs are compatible. Empty MIME is
// considered compatible with any other MIME
func Complies(mime MIME, with string) bool {
	with = Strip(with)
	return len(with) == 0 || strcomp.EqualFold(with, mime)
}

// Is reports whether the value names exactly the MIME, case-insensitively and ignoring
// parameters. Unlike Complies, an empty value matches nothing.
func Is(mime MIME, value string) bool {
	value = Strip(value)
	return len(value) != 0 && strcomp.EqualFold(value, mime)
}

// Strip cuts off the parameters (everything after the first semicolon) and surrounding
// whitespace.
func Strip(value string) string {
	if semicolon := strings.IndexByte(value, ';'); semicolon != -1 {
		value = value[:semicolon]
	}

	return strings.TrimSpace(value)
}
