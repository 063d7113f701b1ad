package types

// NilType is the type of Nil, the singleton absent value.
type NilType byte

// Nil is the nil value of the language.
const Nil = NilType(0)

var _ Value = Nil

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return "nil" }
func (NilType) Truth() Bool    { return False }
