package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anndream/gitgud/protocol"
)

func TestParseOID(t *testing.T) {
	t.Parallel()

	const valid = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	oid, err := protocol.ParseOID(valid)
	require.NoError(t, err)
	require.Equal(t, valid, oid.String())
	require.Equal(t, "aaaaaaaa", oid.Short())
	require.False(t, oid.IsZero())

	zero, err := protocol.ParseOID("0000000000000000000000000000000000000000")
	require.NoError(t, err)
	require.True(t, zero.IsZero())
	require.Equal(t, protocol.Zero, zero)
}

func TestParseOIDErrors(t *testing.T) {
	t.Parallel()

	testcases := map[string]string{
		"too short":  "aaaa",
		"too long":   "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"non-hex":    "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
	}

	for name, in := range testcases {
		t.Run(name, func(t *testing.T) {
			_, err := protocol.ParseOID(in)
			require.ErrorIs(t, err, protocol.ErrBadOidHex)
		})
	}
}

func TestMustParseOIDPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		protocol.MustParseOID("not-an-oid")
	})
}
