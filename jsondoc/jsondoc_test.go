package jsondoc

import (
	"strings"
	"testing"

	"github.com/indigo-web/asyncjson/config"
	"github.com/indigo-web/asyncjson/http/status"
	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		doc, err := Parse([]byte(`{"hello":"world","list":[1,2,3],"nested":{"ok":true}}`))
		require.NoError(t, err)
		require.Equal(t, json.ObjectValue, doc.Kind())
		require.Equal(t, "world", doc.Get("hello").ToString())
		require.Equal(t, 2, doc.Get("list", 1).ToInt())
		require.True(t, doc.Get("nested", "ok").ToBool())
		require.Error(t, doc.Get("missing").LastError())
	})

	t.Run("scalar", func(t *testing.T) {
		doc, err := Parse([]byte(`42`))
		require.NoError(t, err)
		require.Equal(t, json.NumberValue, doc.Kind())
	})

	t.Run("malformed", func(t *testing.T) {
		for _, text := range []string{"", "{", `{"a":}`, "[1,2", "hello"} {
			_, err := Parse([]byte(text))
			require.ErrorIs(t, err, status.ErrMalformedJSON, text)
		}
	})

	t.Run("decode", func(t *testing.T) {
		doc, err := Parse([]byte(`{"name":"sensor","value":21.5}`))
		require.NoError(t, err)

		var reading struct {
			Name  string  `json:"name"`
			Value float64 `json:"value"`
		}
		require.NoError(t, doc.Decode(&reading))
		require.Equal(t, "sensor", reading.Name)
		require.Equal(t, 21.5, reading.Value)

		var wrong []int
		require.Error(t, doc.Decode(&wrong))
	})

	t.Run("zero document", func(t *testing.T) {
		require.Equal(t, json.InvalidValue, Document{}.Kind())
	})
}

func TestSerialize(t *testing.T) {
	text, err := Serialize(map[string]int{"a": 1})
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(text))
}

func TestText(t *testing.T) {
	small := config.Buffer{
		Default: 4,
		Maximal: 32,
		Growth:  config.Growth{Policy: config.Chunked, Step: 8},
	}

	t.Run("append raw", func(t *testing.T) {
		text := NewText(small)
		require.NoError(t, text.AppendString(`{"a":`))
		require.NoError(t, text.AppendRaw([]byte(`[1,2]`)))
		require.NoError(t, text.AppendString(`}`))
		require.Equal(t, `{"a":[1,2]}`, text.String())

		doc, err := text.Parse()
		require.NoError(t, err)
		require.Equal(t, 2, doc.Get("a", 1).ToInt())
	})

	t.Run("too large", func(t *testing.T) {
		text := NewText(small)
		require.ErrorIs(t, text.AppendString(strings.Repeat("a", 33)), ErrTextTooLarge)
		require.Zero(t, text.Len())

		n, err := text.Write([]byte(strings.Repeat("a", 33)))
		require.Zero(t, n)
		require.Error(t, err)
	})

	t.Run("encode", func(t *testing.T) {
		text := NewText(config.Default().Response.Buffer)
		require.NoError(t, text.Encode(map[string]any{"temperature": 21, "unit": "C"}))
		require.JSONEq(t, `{"temperature":21,"unit":"C"}`, text.String())
	})

	t.Run("encode overflow", func(t *testing.T) {
		text := NewText(small)
		require.Error(t, text.Encode(strings.Repeat("a", 64)))
	})

	t.Run("wrap", func(t *testing.T) {
		data := []byte(`[1,2,3]`)
		text := Wrap(data)
		require.Equal(t, `[1,2,3]`, text.String())
		require.Error(t, text.AppendString(","))
	})

	t.Run("reset", func(t *testing.T) {
		text := NewText(small)
		require.NoError(t, text.AppendString("null"))
		text.Reset()
		require.Zero(t, text.Len())
	})
}
