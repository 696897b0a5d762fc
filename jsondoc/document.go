// Package jsondoc is the document model JSON bodies are exchanged through: parsing text
// into a navigable document, serializing values into text and appending raw text to an
// append-only buffer.
package jsondoc

import (
	"github.com/indigo-web/asyncjson/http/status"
	json "github.com/json-iterator/go"
)

var api = json.ConfigCompatibleWithStandardLibrary

// Document is a parsed JSON text. Values are decoded lazily, on access.
//
// Please note: Document doesn't copy the text, so it's valid only as long as the text
// is. Bodies handed to request handlers are released right after the handler returns.
type Document struct {
	raw  []byte
	root json.Any
}

// Parse validates the text and wraps it into a Document. Invalid text results in
// status.ErrMalformedJSON.
func Parse(text []byte) (Document, error) {
	if len(text) == 0 || !api.Valid(text) {
		return Document{}, status.ErrMalformedJSON
	}

	return Document{
		raw:  text,
		root: api.Get(text),
	}, nil
}

// Get walks the path (object keys as strings, array indices as ints) and returns the
// value found. Missing values are reported via the returned value's LastError().
func (d Document) Get(path ...any) json.Any {
	return d.root.Get(path...)
}

// Kind returns the type of the root value.
func (d Document) Kind() json.ValueType {
	if d.root == nil {
		return json.InvalidValue
	}

	return d.root.ValueType()
}

// Raw returns the underlying text.
func (d Document) Raw() []byte {
	return d.raw
}

// Decode unmarshals the document into v.
func (d Document) Decode(v any) error {
	if err := api.Unmarshal(d.raw, v); err != nil {
		return status.ErrMalformedJSON
	}

	return nil
}

// Serialize turns a value into JSON text.
func Serialize(v any) ([]byte, error) {
	return api.Marshal(v)
}
