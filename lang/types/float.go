package types

import (
	"math"
	"strconv"
)

// Float is the type of a number value, an IEEE-754 double-precision float.
type Float float64

var _ Value = Float(0)

// String renders the number the way the print statement requires: the
// shortest round-trip representation, without a trailing ".0" when the
// value is integral (3.0 prints as 3, 3.5 as 3.5). The host language's
// default formatting is not used on purpose.
func (f Float) String() string {
	v := float64(f)
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (f Float) Type() string { return "number" }
func (f Float) Truth() Bool  { return True }
