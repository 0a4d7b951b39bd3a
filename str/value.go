package str

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindChar
	KindInt
	KindFloat
	KindBoolean
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "str"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a runtime value on the operand stack. Values are immutable;
// copying the struct copies the value.
type Value struct {
	kind ValueKind
	data any
}

func NewString(s string) Value { return Value{kind: KindString, data: s} }
func NewChar(r rune) Value     { return Value{kind: KindChar, data: r} }
func NewInt(n int64) Value     { return Value{kind: KindInt, data: n} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewBool(b bool) Value     { return Value{kind: KindBoolean, data: b} }

// Kind returns the runtime type of the value.
func (v Value) Kind() ValueKind { return v.kind }

// Text returns the payload of a String value.
func (v Value) Text() string {
	if s, ok := v.data.(string); ok {
		return s
	}
	return ""
}

// Rune returns the payload of a Char value.
func (v Value) Rune() rune {
	if r, ok := v.data.(rune); ok {
		return r
	}
	return 0
}

// Int returns the value as an int64, truncating a Float payload.
func (v Value) Int() int64 {
	switch d := v.data.(type) {
	case int64:
		return d
	case float64:
		return int64(d)
	}
	return 0
}

// Float returns the value as a float64, promoting an Int payload.
func (v Value) Float() float64 {
	switch d := v.data.(type) {
	case float64:
		return d
	case int64:
		return float64(d)
	}
	return 0
}

// Bool returns the payload of a Boolean value.
func (v Value) Bool() bool {
	if b, ok := v.data.(bool); ok {
		return b
	}
	return false
}

// Type returns the dispatch classification of the value.
func (v Value) Type() Type {
	switch v.kind {
	case KindString:
		return TypeString
	case KindChar:
		return TypeChar
	case KindInt:
		return TypeInt
	case KindFloat:
		return TypeFloat
	case KindBoolean:
		return TypeBoolean
	default:
		return TypeAny
	}
}

// Equal reports structural equality. Values of different kinds are
// never equal, so Int 1 and Float 1.0 compare unequal.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.data == o.data
}

// String renders the value for display: strings and chars appear raw,
// without quotes. This is the form join uses.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.Text()
	case KindChar:
		return string(v.Rune())
	case KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float())
	case KindBoolean:
		return strconv.FormatBool(v.Bool())
	default:
		return ""
	}
}

// Inspect renders the value for debugging: strings and chars are
// quoted and floats always carry a decimal point, so Int 1 and Float 1
// stay distinguishable. This is the form stack displays use.
func (v Value) Inspect() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.Text())
	case KindChar:
		return strconv.QuoteRune(v.Rune())
	case KindFloat:
		return formatFloat(v.Float())
	default:
		return v.String()
	}
}

// formatFloat renders f with a trailing .0 when the shortest form has
// neither a decimal point nor an exponent.
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Type classifies values for dispatch. TypeAny never describes a real
// value; it only appears in signatures, where it matches every type.
type Type int

const (
	TypeAny Type = iota
	TypeString
	TypeChar
	TypeInt
	TypeFloat
	TypeBoolean
)

func (t Type) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeString:
		return "str"
	case TypeChar:
		return "char"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "bool"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// match reports whether t accepts o. Any is a wildcard on either side:
// an Any parameter takes every value and an Any argument satisfies
// every parameter.
func (t Type) match(o Type) bool {
	return t == TypeAny || o == TypeAny || t == o
}

// typeByName resolves a macro parameter type name.
func typeByName(name string) (Type, bool) {
	switch name {
	case "any":
		return TypeAny, true
	case "str":
		return TypeString, true
	case "char":
		return TypeChar, true
	case "int":
		return TypeInt, true
	case "float":
		return TypeFloat, true
	case "bool":
		return TypeBoolean, true
	default:
		return TypeAny, false
	}
}
