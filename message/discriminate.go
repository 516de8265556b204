package message

import (
	"fmt"
	"hash/fnv"
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

// NotEqualNote is appended when two values differ but nothing about them
// that can be shown does.
const NotEqualNote = "The values are not equal, despite having identical string representations."

// discriminator describes one property that may tell two values apart.
type discriminator struct {
	suffix string
	fn     func(any) string
}

var discriminators = []discriminator{
	{".type", func(v any) string { return fmt.Sprintf("%T", v) }},
	{".hash", hash},
	{".identity", identity},
}

// dumper renders values deterministically, without pointer addresses.
var dumper = spew.ConfigState{
	Indent:                  " ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// hash returns an FNV-64a hash of the contents of v.
func hash(v any) string {
	h := fnv.New64a()
	dumper.Fdump(h, v)
	return fmt.Sprintf("%016x", h.Sum64())
}

// identity returns the address of reference values, or n/a.
func identity(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return fmt.Sprintf("%#x", rv.Pointer())
	}
	return "n/a"
}

// discriminate explains why two values with identical string forms are not
// equal, using the first property that differs.
func (g *ContextGenerator) discriminate() []Section {
	if !g.hasActual || !g.hasExpected || g.cfg.Equals(g.actual, g.expected) {
		return nil
	}
	for _, d := range discriminators {
		actual, expected := d.fn(g.actual), d.fn(g.expected)
		if actual != expected {
			return []Section{
				StringSection(""),
				ContextSection{
					{g.actualName + d.suffix, actual},
					{g.expectedName + d.suffix, expected},
				},
			}
		}
	}
	return []Section{StringSection(""), StringSection(NotEqualNote)}
}
