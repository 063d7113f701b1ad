package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupKw(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		expect := tok >= kwStart && tok <= kwEnd
		val := LookupKw(tok.String())
		if expect {
			require.Equal(t, tok, val)
		} else {
			require.Equal(t, IDENT, val)
		}
	}
}

func TestGoString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		want := tok.String()
		if tok >= punctStart && tok <= punctEnd {
			want = "'" + want + "'"
		}
		require.Equal(t, want, tok.GoString())
	}
}

func TestIsBinop(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		maybe := (tok >= punctStart && tok <= punctEnd) || tok == AND || tok == OR
		if !maybe {
			require.False(t, tok.IsBinop())
		}
	}
	require.True(t, PLUS.IsBinop())
	require.True(t, OR.IsBinop())
	require.False(t, EQ.IsBinop())
	require.False(t, BANG.IsBinop())
}

func TestIsUnop(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		expect := tok == BANG || tok == MINUS
		require.Equal(t, expect, tok.IsUnop())
	}
}

func TestLiteral(t *testing.T) {
	val := Value{
		Raw:    "raw",
		String: "string",
		Float:  2,
	}

	got := IDENT.Literal(val)
	require.Equal(t, val.Raw, got)
	got = STRING.Literal(val)
	require.Equal(t, `"string"`, got)
	got = NUMBER.Literal(val)
	require.Equal(t, "raw", got)
	got = ILLEGAL.Literal(val)
	require.Equal(t, "", got)
}
