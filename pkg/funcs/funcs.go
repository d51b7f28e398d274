package funcs

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Mode describes how a function reacts to degree mode.
type Mode int

const (
	// ModeNone ignores degree mode.
	ModeNone Mode = iota
	// ModeForward takes its argument in degrees when degree mode is on.
	ModeForward
	// ModeInverse returns its result in degrees when degree mode is on.
	ModeInverse
)

func (m Mode) String() string {
	switch m {
	case ModeForward:
		return "angle argument"
	case ModeInverse:
		return "angle result"
	default:
		return "-"
	}
}

// Func is one entry of the function table.
type Func struct {
	Name  string
	Mode  Mode
	LaTeX string // format with a single %s for the argument
	fn    func(float64) float64
}

// Apply evaluates f at arg, converting between degrees and radians
// according to f.Mode when degree is set.
func (f *Func) Apply(arg float64, degree bool) float64 {
	if degree && f.Mode == ModeForward {
		arg = arg * (math.Pi / 180)
	}
	r := f.fn(arg)
	if degree && f.Mode == ModeInverse {
		r = r * (180 / math.Pi)
	}
	return r
}

var registry = map[string]*Func{}

func register(name string, mode Mode, latex string, fn func(float64) float64) {
	registry[name] = &Func{Name: name, Mode: mode, LaTeX: latex, fn: fn}
}

func init() {
	register("sin", ModeForward, `\sin{(%s)}`, math.Sin)
	register("cos", ModeForward, `\cos{(%s)}`, math.Cos)
	register("tan", ModeForward, `\tan{(%s)}`, math.Tan)
	register("asin", ModeInverse, `\arcsin{(%s)}`, math.Asin)
	register("acos", ModeInverse, `\arccos{(%s)}`, math.Acos)
	register("atan", ModeInverse, `\arctan{(%s)}`, math.Atan)
	register("sinh", ModeNone, `\sinh{(%s)}`, math.Sinh)
	register("cosh", ModeNone, `\cosh{(%s)}`, math.Cosh)
	register("tanh", ModeNone, `\tanh{(%s)}`, math.Tanh)
	register("ln", ModeNone, `\ln{(%s)}`, math.Log)
	register("log", ModeNone, `\log_{10}{(%s)}`, math.Log10)
	register("sqrt", ModeNone, `\sqrt{%s}`, math.Sqrt)
	register("cbrt", ModeNone, `\sqrt[3]{%s}`, math.Cbrt)
}

// Lookup returns the function registered under name.
func Lookup(name string) (*Func, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names returns all function names, sorted.
func Names() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// Constant holds a named constant.
type Constant struct {
	Name  string
	Value float64
	LaTeX string
}

var constants = map[string]Constant{
	"e":  {Name: "e", Value: math.E, LaTeX: "e"},
	"pi": {Name: "pi", Value: math.Pi, LaTeX: `\pi`},
}

// LookupConstant returns the constant named name.
func LookupConstant(name string) (Constant, bool) {
	c, ok := constants[name]
	return c, ok
}

// ConstantNames returns all constant names, sorted.
func ConstantNames() []string {
	names := maps.Keys(constants)
	slices.Sort(names)
	return names
}
