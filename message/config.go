package message

import (
	"fmt"
	"reflect"

	"github.com/kenshaw/requirements/chardiff"
	"github.com/kenshaw/requirements/terminal"
	"github.com/kr/pretty"
)

// Config controls how values are compared and rendered.
type Config struct {
	// Encoding selects the diff decorator.
	Encoding terminal.Encoding
	// Engine computes character diffs. Nil uses the default engine.
	Engine *chardiff.Config
	// StringMapper converts values to the text that is diffed.
	StringMapper func(any) string
	// Equal reports whether two values are equal.
	Equal func(a, b any) bool
	// MaxLength disables diffing when either string form is longer than
	// MaxLength bytes. Zero means no limit.
	MaxLength int
}

// NewDefaultConfig creates a text-only configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Encoding:     terminal.None,
		Engine:       chardiff.NewDefaultConfig(),
		StringMapper: DefaultStringMapper,
		Equal:        DefaultEqual,
	}
}

// Text converts v to the text that is diffed.
func (cfg *Config) Text(v any) string {
	if cfg.StringMapper == nil {
		return DefaultStringMapper(v)
	}
	return cfg.StringMapper(v)
}

// Equals reports whether a and b are equal.
func (cfg *Config) Equals(a, b any) bool {
	if cfg.Equal == nil {
		return DefaultEqual(a, b)
	}
	return cfg.Equal(a, b)
}

// DefaultStringMapper quotes strings, uses the String or Error method of
// values that have one, pretty prints composite values and formats anything
// else with fmt.
func DefaultStringMapper(v any) string {
	if v == nil {
		return "nil"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return fmt.Sprintf("%T(nil)", v)
		}
	}
	switch x := v.(type) {
	case string:
		return `"` + x + `"`
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}
	switch rv.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer:
		return pretty.Sprint(v)
	}
	return fmt.Sprint(v)
}

// DefaultEqual compares comparable values with == and falls back to
// reflect.DeepEqual for the rest. Pointers are equal only when they are the
// same pointer.
func DefaultEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = reflect.DeepEqual(a, b)
		}
	}()
	return a == b
}
