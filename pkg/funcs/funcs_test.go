package funcs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"sin", "cos", "tan", "asin", "acos", "atan",
		"sinh", "cosh", "tanh", "ln", "log", "sqrt", "cbrt"} {
		f, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, f.Name)
	}

	_, ok := Lookup("foo")
	assert.False(t, ok)
	_, ok = Lookup("pi")
	assert.False(t, ok)
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	require.Len(t, names, 13)
	assert.Equal(t, "acos", names[0])
	assert.Equal(t, "tanh", names[len(names)-1])
	assert.Equal(t, []string{"e", "pi"}, ConstantNames())
}

func TestApplyDegreeMode(t *testing.T) {
	cases := []struct {
		name   string
		arg    float64
		degree bool
		want   float64
	}{
		{"sin", 90, true, 1},
		{"sin", math.Pi / 2, false, 1},
		{"cos", 180, true, -1},
		{"tan", 45, true, 1},
		{"asin", 1, true, 90},
		{"asin", 1, false, math.Pi / 2},
		{"acos", 0, true, 90},
		{"atan", 1, true, 45},
		{"sinh", 0, true, 0},
		{"cosh", 0, true, 1},
		{"ln", math.E, true, 1},
		{"log", 1000, false, 3},
		{"sqrt", 16, true, 4},
		{"cbrt", 27, true, 3},
	}
	for _, tc := range cases {
		f, ok := Lookup(tc.name)
		require.True(t, ok)
		assert.InDelta(t, tc.want, f.Apply(tc.arg, tc.degree), 1e-9, "%s(%v) degree=%v", tc.name, tc.arg, tc.degree)
	}
}

func TestApplyDomainIsIEEE(t *testing.T) {
	ln, _ := Lookup("ln")
	assert.True(t, math.IsNaN(ln.Apply(-1, false)))
	assert.True(t, math.IsInf(ln.Apply(0, false), -1))

	sqrt, _ := Lookup("sqrt")
	assert.True(t, math.IsNaN(sqrt.Apply(-4, true)))
}

func TestLookupConstant(t *testing.T) {
	c, ok := LookupConstant("pi")
	require.True(t, ok)
	assert.Equal(t, math.Pi, c.Value)

	c, ok = LookupConstant("e")
	require.True(t, ok)
	assert.Equal(t, math.E, c.Value)

	_, ok = LookupConstant("x")
	assert.False(t, ok)
}

func TestModeString(t *testing.T) {
	sin, _ := Lookup("sin")
	atan, _ := Lookup("atan")
	ln, _ := Lookup("ln")
	assert.Equal(t, "angle argument", sin.Mode.String())
	assert.Equal(t, "angle result", atan.Mode.String())
	assert.Equal(t, "-", ln.Mode.String())
}
