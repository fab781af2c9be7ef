package bus

import (
	"fmt"
	"strings"
)

// Value is a dynamically-typed result of a state query. Its concrete type
// (Bool, U8, U16, U32, U64, I8, Str, Arr or Map) tells which kind it is; a
// type switch recovers the underlying value.
type Value interface {
	fmt.Stringer
	isValue()
}

type (
	// Bool is a boolean query result.
	Bool bool
	// U8 is an 8-bit unsigned query result.
	U8 uint8
	// U16 is a 16-bit unsigned query result.
	U16 uint16
	// U32 is a 32-bit unsigned query result.
	U32 uint32
	// U64 is a 64-bit unsigned query result.
	U64 uint64
	// I8 is an 8-bit signed query result.
	I8 int8
	// Str is a string query result.
	Str string
	// Arr is an ordered array of query results.
	Arr []Value
	// Map is a named map of query results. Iteration order is
	// alphabetical by key so Display output is deterministic.
	Map map[string]Value
)

func (Bool) isValue() {}
func (U8) isValue()   {}
func (U16) isValue()  {}
func (U32) isValue()  {}
func (U64) isValue()  {}
func (I8) isValue()   {}
func (Str) isValue()  {}
func (Arr) isValue()  {}
func (Map) isValue()  {}

func (v Bool) String() string { return fmt.Sprintf("%t", bool(v)) }
func (v U8) String() string   { return fmt.Sprintf("%#04X", uint8(v)) }
func (v U16) String() string  { return fmt.Sprintf("%#06X", uint16(v)) }
func (v U32) String() string  { return fmt.Sprintf("%#010X", uint32(v)) }
func (v U64) String() string  { return fmt.Sprintf("%d", uint64(v)) }
func (v I8) String() string   { return fmt.Sprintf("%d", int8(v)) }
func (v Str) String() string  { return string(v) }

func (v Arr) String() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v Map) String() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sortStrings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + v[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Observable is implemented by any component whose internal state can be
// inspected without affecting emulation. Paths are hierarchical and
// dot-separated, e.g. "flags.z" or "pc".
type Observable interface {
	// Query looks up a single property by path. ok is false if path is
	// not recognised.
	Query(path string) (value Value, ok bool)
	// QueryPaths lists every path Query accepts.
	QueryPaths() []string
}
