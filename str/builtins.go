package str

import (
	"fmt"
	"math"
	"strings"
)

// StdProgram returns a program with the built-in operation library
// registered. Arithmetic and comparison operations are registered once
// per numeric pairing, so their sets read the same way dispatch
// resolves them.
func StdProgram() *Program {
	p := NewProgram()

	p.Register("LEN", nil, stackLen)
	p.Register("len", []Type{TypeString}, stringLen)

	p.Register("drop", []Type{TypeAny}, dropTop)
	p.Register("copy", []Type{TypeAny}, copyTop)
	p.Register("swap", []Type{TypeAny, TypeAny}, swapTop)
	p.Register("over", []Type{TypeAny, TypeAny}, overTop)

	registerNumeric(p, "+", addValues)
	p.Register("+", []Type{TypeString, TypeString}, addValues)
	p.Register("+", []Type{TypeString, TypeChar}, addValues)
	registerNumeric(p, "-", subValues)
	registerNumeric(p, "*", multValues)
	p.Register("*", []Type{TypeString, TypeInt}, multValues)
	p.Register("*", []Type{TypeChar, TypeInt}, multValues)
	registerNumeric(p, "/", divValues)
	registerNumeric(p, "%", modValues)
	registerNumeric(p, "**", powValues)

	p.Register("and", []Type{TypeBoolean, TypeBoolean}, andValues)
	p.Register("or", []Type{TypeBoolean, TypeBoolean}, orValues)
	p.Register("not", []Type{TypeBoolean}, notValue)

	p.Register("=", []Type{TypeAny, TypeAny}, equalValues)
	p.Register("!=", []Type{TypeAny, TypeAny}, notEqualValues)
	registerNumeric(p, "<", lessValues)
	registerNumeric(p, ">", greaterValues)
	registerNumeric(p, "<=", lessEqualValues)
	registerNumeric(p, ">=", greaterEqualValues)

	p.Register(".", []Type{TypeString, TypeInt}, charAt)
	p.Register(".", []Type{TypeString, TypeInt, TypeInt}, sliceString)
	p.Register("rev", []Type{TypeString}, reverseString)
	p.Register("pos", []Type{TypeString, TypeString}, findInString)
	p.Register("pos", []Type{TypeString, TypeChar}, findInString)
	p.Register("remove", []Type{TypeString, TypeInt}, removeAt)
	p.Register("count", []Type{TypeString, TypeChar}, countInString)
	p.Register("count", []Type{TypeString, TypeString}, countInString)
	p.Register("split", []Type{TypeString, TypeChar}, splitString)
	p.Register("split", []Type{TypeString, TypeString}, splitString)
	p.Register("join", []Type{TypeChar}, joinStack)
	p.Register("join", []Type{TypeString}, joinStack)

	return p
}

// numericPairs is every Int/Float pairing, in the order the arithmetic
// and comparison operations register their overloads.
var numericPairs = [][]Type{
	{TypeInt, TypeInt},
	{TypeFloat, TypeFloat},
	{TypeInt, TypeFloat},
	{TypeFloat, TypeInt},
}

func registerNumeric(p *Program, name string, fn NativeFunc) {
	for _, params := range numericPairs {
		p.Register(name, params, fn)
	}
}

// dispatchFault is the panic message for a built-in that popped
// operands dispatch should never have let through.
func dispatchFault(name string) string {
	return fmt.Sprintf("builtin %s: operand types bypassed dispatch", name)
}

func isNumeric(v Value) bool {
	return v.Kind() == KindInt || v.Kind() == KindFloat
}

func stackLen(p *Program) error {
	p.stack.Push(NewInt(int64(p.stack.Len())))
	return nil
}

func dropTop(p *Program) error {
	p.stack.mustPop()
	return nil
}

func copyTop(p *Program) error {
	v := p.stack.mustPop()
	p.stack.Push(v)
	p.stack.Push(v)
	return nil
}

func swapTop(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	p.stack.Push(b)
	p.stack.Push(a)
	return nil
}

func overTop(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	p.stack.Push(a)
	p.stack.Push(b)
	p.stack.Push(a)
	return nil
}

// addValues: Int+Int stays Int, any other numeric pairing widens to
// Float. Strings concatenate and a char appends to a string.
func addValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	switch {
	case a.Kind() == KindInt && b.Kind() == KindInt:
		p.stack.Push(NewInt(a.Int() + b.Int()))
	case isNumeric(a) && isNumeric(b):
		p.stack.Push(NewFloat(a.Float() + b.Float()))
	case a.Kind() == KindString && b.Kind() == KindString:
		p.stack.Push(NewString(a.Text() + b.Text()))
	case a.Kind() == KindString && b.Kind() == KindChar:
		p.stack.Push(NewString(a.Text() + string(b.Rune())))
	default:
		panic(dispatchFault("+"))
	}
	return nil
}

func subValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	switch {
	case a.Kind() == KindInt && b.Kind() == KindInt:
		p.stack.Push(NewInt(a.Int() - b.Int()))
	case isNumeric(a) && isNumeric(b):
		p.stack.Push(NewFloat(a.Float() - b.Float()))
	default:
		panic(dispatchFault("-"))
	}
	return nil
}

// multValues also repeats a string or char: a negative count yields
// the empty string.
func multValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	switch {
	case a.Kind() == KindInt && b.Kind() == KindInt:
		p.stack.Push(NewInt(a.Int() * b.Int()))
	case isNumeric(a) && isNumeric(b):
		p.stack.Push(NewFloat(a.Float() * b.Float()))
	case a.Kind() == KindString && b.Kind() == KindInt:
		p.stack.Push(NewString(strings.Repeat(a.Text(), clampCount(b.Int()))))
	case a.Kind() == KindChar && b.Kind() == KindInt:
		p.stack.Push(NewString(strings.Repeat(string(a.Rune()), clampCount(b.Int()))))
	default:
		panic(dispatchFault("*"))
	}
	return nil
}

// divValues always produces a Float, Int/Int included. Division by
// zero follows float semantics and yields Inf or NaN.
func divValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	if !isNumeric(a) || !isNumeric(b) {
		panic(dispatchFault("/"))
	}
	p.stack.Push(NewFloat(a.Float() / b.Float()))
	return nil
}

func modValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	switch {
	case a.Kind() == KindInt && b.Kind() == KindInt:
		p.stack.Push(NewInt(a.Int() % b.Int()))
	case isNumeric(a) && isNumeric(b):
		p.stack.Push(NewFloat(math.Mod(a.Float(), b.Float())))
	default:
		panic(dispatchFault("%"))
	}
	return nil
}

// powValues: Int**Int stays Int, everything else goes through
// math.Pow. Negative exponents clamp to zero when the exponent is an
// Int, so 2 -3 ** is 1.
func powValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	switch {
	case a.Kind() == KindInt && b.Kind() == KindInt:
		p.stack.Push(NewInt(intPow(a.Int(), b.Int())))
	case a.Kind() == KindFloat && b.Kind() == KindInt:
		exp := b.Int()
		if exp < 0 {
			exp = 0
		}
		p.stack.Push(NewFloat(math.Pow(a.Float(), float64(exp))))
	case isNumeric(a) && isNumeric(b):
		p.stack.Push(NewFloat(math.Pow(a.Float(), b.Float())))
	default:
		panic(dispatchFault("**"))
	}
	return nil
}

// intPow is integer exponentiation with wrap-around on overflow. A
// negative exponent clamps to zero, so the result is 1.
func intPow(base, exp int64) int64 {
	out := int64(1)
	for ; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			out *= base
		}
		base *= base
	}
	return out
}

func clampCount(n int64) int {
	if n < 0 {
		return 0
	}
	return int(n)
}

func andValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	if a.Kind() != KindBoolean || b.Kind() != KindBoolean {
		panic(dispatchFault("and"))
	}
	p.stack.Push(NewBool(a.Bool() && b.Bool()))
	return nil
}

func orValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	if a.Kind() != KindBoolean || b.Kind() != KindBoolean {
		panic(dispatchFault("or"))
	}
	p.stack.Push(NewBool(a.Bool() || b.Bool()))
	return nil
}

func notValue(p *Program) error {
	v := p.stack.mustPop()
	if v.Kind() != KindBoolean {
		panic(dispatchFault("not"))
	}
	p.stack.Push(NewBool(!v.Bool()))
	return nil
}

// equalValues compares structurally, so Int 1 and Float 1.0 are not
// equal.
func equalValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	p.stack.Push(NewBool(a.Equal(b)))
	return nil
}

func notEqualValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	p.stack.Push(NewBool(!a.Equal(b)))
	return nil
}

func lessValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	switch {
	case a.Kind() == KindInt && b.Kind() == KindInt:
		p.stack.Push(NewBool(a.Int() < b.Int()))
	case isNumeric(a) && isNumeric(b):
		p.stack.Push(NewBool(a.Float() < b.Float()))
	default:
		panic(dispatchFault("<"))
	}
	return nil
}

func greaterValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	switch {
	case a.Kind() == KindInt && b.Kind() == KindInt:
		p.stack.Push(NewBool(a.Int() > b.Int()))
	case isNumeric(a) && isNumeric(b):
		p.stack.Push(NewBool(a.Float() > b.Float()))
	default:
		panic(dispatchFault(">"))
	}
	return nil
}

func lessEqualValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	switch {
	case a.Kind() == KindInt && b.Kind() == KindInt:
		p.stack.Push(NewBool(a.Int() <= b.Int()))
	case isNumeric(a) && isNumeric(b):
		p.stack.Push(NewBool(a.Float() <= b.Float()))
	default:
		panic(dispatchFault("<="))
	}
	return nil
}

func greaterEqualValues(p *Program) error {
	b, a := p.stack.mustPop(), p.stack.mustPop()
	switch {
	case a.Kind() == KindInt && b.Kind() == KindInt:
		p.stack.Push(NewBool(a.Int() >= b.Int()))
	case isNumeric(a) && isNumeric(b):
		p.stack.Push(NewBool(a.Float() >= b.Float()))
	default:
		panic(dispatchFault(">="))
	}
	return nil
}
