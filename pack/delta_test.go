package pack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyDeltaInsertOnly(t *testing.T) {
	t.Parallel()

	base := []byte("irrelevant")
	result := []byte("hello world")

	delta := append(encodeDeltaSize(len(base)), encodeDeltaSize(len(result))...)
	delta = append(delta, byte(len(result)))
	delta = append(delta, result...)

	got, err := ApplyDelta(base, delta)
	require.NoError(t, err)
	require.Equal(t, result, got)
}

func TestApplyDeltaCopyAndInsert(t *testing.T) {
	t.Parallel()

	base := []byte("The quick brown fox jumps over the lazy dog")
	want := []byte("The quick brown cat jumps over the lazy dog")

	delta := append(encodeDeltaSize(len(base)), encodeDeltaSize(len(want))...)
	// copy "The quick brown " (offset 0, size 16)
	delta = append(delta, 0x80|0x10, 16)
	// insert "cat"
	delta = append(delta, 3)
	delta = append(delta, []byte("cat")...)
	// copy " jumps over the lazy dog" (offset 19, size 24)
	delta = append(delta, 0x80|0x01|0x10, 19, 24)

	got, err := ApplyDelta(base, delta)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestApplyDeltaBaseSizeMismatch(t *testing.T) {
	t.Parallel()

	delta := append(encodeDeltaSize(5), encodeDeltaSize(0)...)
	_, err := ApplyDelta([]byte("wrongsize-base"), delta)
	require.ErrorIs(t, err, ErrMalformedDelta)
}

func TestApplyDeltaCopyOutOfRange(t *testing.T) {
	t.Parallel()

	base := []byte("short")
	delta := append(encodeDeltaSize(len(base)), encodeDeltaSize(10)...)
	delta = append(delta, 0x80|0x10, 10) // copy 10 bytes from offset 0 of a 5-byte base

	_, err := ApplyDelta(base, delta)
	require.ErrorIs(t, err, ErrMalformedDelta)
}

func TestEncodeDeltaSizeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, 127, 128, 16383, 16384, 1 << 20} {
		enc := encodeDeltaSize(size)
		got, n, err := readDeltaSize(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, size, got)
	}
}
