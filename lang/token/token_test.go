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

func TestTokenGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "'=='", EQEQ.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
	require.Equal(t, "class", CLASS.GoString())
}

func TestLookupIdent(t *testing.T) {
	for word, tok := range keywords {
		require.Equal(t, tok, LookupIdent(word))
	}
	require.Equal(t, IDENT, LookupIdent("foo"))
	require.Equal(t, IDENT, LookupIdent("classroom"))
}

func TestLiteral(t *testing.T) {
	val := Value{Raw: "abc"}

	require.Equal(t, "abc", IDENT.Literal(val))
	require.Equal(t, "abc", NUMBER.Literal(val))
	require.Equal(t, "abc", STRING.Literal(val))
	require.Equal(t, "", PLUS.Literal(val))
	require.Equal(t, "", ILLEGAL.Literal(val))
}
