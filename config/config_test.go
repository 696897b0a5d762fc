package config

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoZeroFields(t *testing.T) {
	cfg := Default()

	for _, field := range visit(newVar(*cfg), "Config", false) {
		assert.Fail(t, "zero-value field", field)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	t.Run("limits", func(t *testing.T) {
		require.Less(t, cfg.JSON.EntryMaxSize, cfg.JSON.FragmentMaxSize)
		require.GreaterOrEqual(t, cfg.JSON.MemoryLimit, cfg.JSON.FragmentMaxSize)
	})

	t.Run("delivery", func(t *testing.T) {
		require.Equal(t, TimeSliced, cfg.Delivery.Strategy)
		require.Less(t, uint64(cfg.Delivery.SliceSize), cfg.JSON.FragmentMaxSize)
	})

	t.Run("response buffer", func(t *testing.T) {
		require.LessOrEqual(t, cfg.Response.Buffer.Default, cfg.Response.Buffer.Maximal)
	})

	t.Run("independent copies", func(t *testing.T) {
		a, b := Default(), Default()
		a.JSON.EntryMaxSize = 1
		require.NotEqual(t, a.JSON.EntryMaxSize, b.JSON.EntryMaxSize)
	})
}

type variable struct {
	Type  reflect.Type
	Value reflect.Value
}

func newVar(a any) variable {
	return variable{reflect.TypeOf(a), reflect.ValueOf(a)}
}

func visit(a variable, name string, nullable bool) (fields []string) {
	if a.Type.Kind() == reflect.Struct {
		for field := range a.Value.NumField() {
			v1 := variable{a.Type.Field(field).Type, a.Value.Field(field)}
			fieldname := a.Type.Field(field).Name
			isNullable := a.Type.Field(field).Tag.Get("test") == "nullable"
			fields = append(fields, visit(v1, name+"."+fieldname, isNullable)...)
		}

		return fields
	}

	if a.Value.IsZero() && !nullable {
		return []string{name}
	}

	return nil
}
