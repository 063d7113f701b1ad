package types

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloatString(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{3, "3"},
		{3.0, "3"},
		{3.5, "3.5"},
		{-3, "-3"},
		{-3.25, "-3.25"},
		{55, "55"},
		{0.1, "0.1"},
		{1e14, "100000000000000"},
		{1e21, "1e+21"},
		{2.5e-10, "2.5e-10"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			require.Equal(t, c.want, Float(c.in).String())
		})
	}
}

func TestTruth(t *testing.T) {
	cases := []struct {
		v    Value
		want Bool
	}{
		{Nil, False},
		{False, False},
		{True, True},
		{Float(0), True},
		{Float(1), True},
		{String(""), True},
		{String("x"), True},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%s %s", c.v.Type(), c.v), func(t *testing.T) {
			require.Equal(t, c.want, c.v.Truth())
		})
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		x, y Value
		want bool
	}{
		{Nil, Nil, true},
		{Nil, False, false},
		{Nil, Float(0), false},
		{True, True, true},
		{True, False, false},
		{Float(1), Float(1), true},
		{Float(1), Float(2), false},
		{Float(1), String("1"), false},
		{String("a"), String("a"), true},
		{String("a"), String("b"), false},
		{Float(math.NaN()), Float(math.NaN()), false},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v==%v", c.x, c.y), func(t *testing.T) {
			require.Equal(t, c.want, Equal(c.x, c.y))
		})
	}
}

func TestNilBoolString(t *testing.T) {
	require.Equal(t, "nil", Nil.String())
	require.Equal(t, "true", True.String())
	require.Equal(t, "false", False.String())
}
