package jsondoc

import (
	"errors"

	"github.com/indigo-web/asyncjson/config"
	"github.com/indigo-web/asyncjson/internal/buffer"
	"github.com/indigo-web/utils/uf"
)

var ErrTextTooLarge = errors.New("jsondoc: text exceeds the buffer limit")

// Text is an append-only JSON text. It's used both for a response being generated and
// for a request body fragment handed to the application. Text doesn't validate what's
// appended: raw appends are trusted to form a valid JSON text in the end.
type Text struct {
	buff buffer.Buffer
}

// NewText returns an empty text, growing according to the config.
func NewText(cfg config.Buffer) *Text {
	return &Text{
		buff: buffer.New(cfg.Default, cfg.Maximal, growth(cfg.Growth)),
	}
}

// Wrap returns a text hosting the data without copying. Such a text can't grow.
func Wrap(data []byte) *Text {
	return &Text{
		buff: buffer.From(data),
	}
}

func growth(g config.Growth) buffer.Grow {
	switch g.Policy {
	case config.Chunked:
		return buffer.Chunks(g.Step)
	default:
		return buffer.Double
	}
}

// AppendRaw appends the text as is.
func (t *Text) AppendRaw(text []byte) error {
	if !t.buff.Append(text) {
		return ErrTextTooLarge
	}

	return nil
}

// AppendString appends the text as is.
func (t *Text) AppendString(text string) error {
	if !t.buff.AppendString(text) {
		return ErrTextTooLarge
	}

	return nil
}

// Write implements io.Writer. Either all the bytes are written, or none.
func (t *Text) Write(p []byte) (n int, err error) {
	if err = t.AppendRaw(p); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Encode serializes the value and appends the result.
func (t *Text) Encode(v any) error {
	stream := api.BorrowStream(t)
	defer api.ReturnStream(stream)

	stream.WriteVal(v)
	if stream.Error != nil {
		return stream.Error
	}

	return stream.Flush()
}

// Parse parses the text written so far.
func (t *Text) Parse() (Document, error) {
	return Parse(t.Bytes())
}

// Bytes returns the text without copying.
func (t *Text) Bytes() []byte {
	return t.buff.Bytes()
}

// String returns the text without copying, so the string is valid only until the next
// modification.
func (t *Text) String() string {
	return uf.B2S(t.buff.Bytes())
}

func (t *Text) Len() int {
	return t.buff.Len()
}

func (t *Text) Reset() {
	t.buff.Clear()
}
