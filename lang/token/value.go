package token

// Value carries the value information of a token, which is only meaningful
// for some token types. The scanner fills the fields that apply to the
// token it returns and the Raw and Pos fields are always set.
type Value struct {
	Raw    string  // uninterpreted text of the token, the exact source slice
	Pos    Pos     // starting position of the token
	Float  float64 // number value, set for NUMBER
	String string  // string value, set for STRING (no escape processing)
}
