package pktline_test

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anndream/gitgud/pktline"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	testcases := map[string]struct {
		input    []byte
		expected []byte
		wantErr  error
	}{
		"a + LF": {
			input:    []byte("a\n"),
			expected: []byte("0006a\n"),
		},
		"a": {
			input:    []byte("a"),
			expected: []byte("0005a"),
		},
		"foobar + LF": {
			input:    []byte("foobar\n"),
			expected: []byte("000bfoobar\n"),
		},
		"empty": {
			input:    []byte(""),
			expected: []byte("0004"),
		},
		"data too large": {
			input:   make([]byte, pktline.MaxDataSize+1),
			wantErr: pktline.ErrDataTooLarge,
		},
		"exact max size": {
			input: make([]byte, pktline.MaxDataSize),
			expected: append(
				[]byte(fmt.Sprintf("%04x", pktline.MaxDataSize+4)),
				make([]byte, pktline.MaxDataSize)...,
			),
		},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			actual, err := pktline.Encode(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestFlushRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, pktline.WriteFlush(&buf))
	require.Equal(t, "0000", buf.String())

	s := pktline.NewScanner(&buf)
	tok, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, pktline.KindFlush, tok.Kind)

	_, err = s.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestScannerDecodesDataAndStripsLF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, pktline.WriteLine(&buf, "want aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	require.NoError(t, pktline.WriteFlush(&buf))

	tokens, tail, err := pktline.DecodeAll(buf.Bytes())
	require.NoError(t, err)
	require.Nil(t, tail)
	require.Len(t, tokens, 2)
	require.Equal(t, pktline.KindData, tokens[0].Kind)
	require.Equal(t, "want aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", string(tokens[0].Data))
	require.Equal(t, pktline.KindFlush, tokens[1].Kind)
}

func TestScannerRoundTripNoLF(t *testing.T) {
	t.Parallel()

	// Law: decode(encode([P])) == [P] for any P not containing the PACK magic.
	payloads := [][]byte{[]byte("hello"), []byte(""), []byte("a quite long payload, but not too long")}
	var buf bytes.Buffer
	for _, p := range payloads {
		require.NoError(t, pktline.WriteData(&buf, p))
	}
	require.NoError(t, pktline.WriteFlush(&buf))

	tokens, _, err := pktline.DecodeAll(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, tokens, len(payloads)+1)
	for i, p := range payloads {
		require.Equal(t, p, tokens[i].Data)
	}
}

func TestScannerDetectsPackMagic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, pktline.WriteLine(&buf, "done"))
	packBytes := append([]byte("PACK"), []byte{0, 0, 0, 2, 0, 0, 0, 0}...)
	buf.Write(packBytes)

	tokens, tail, err := pktline.DecodeAll(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, "done", string(tokens[0].Data))
	require.Equal(t, packBytes, tail)
}

func TestScannerMalformedLength(t *testing.T) {
	t.Parallel()

	_, _, err := pktline.DecodeAll([]byte("zzzzgarbage"))
	require.ErrorIs(t, err, pktline.ErrMalformedPktLine)
}

func TestScannerTruncatedPayload(t *testing.T) {
	t.Parallel()

	// Declares 20 bytes of payload but only supplies 3.
	_, _, err := pktline.DecodeAll([]byte("0018abc"))
	require.ErrorIs(t, err, pktline.ErrMalformedPktLine)
}

func TestEncodeLineAppendsLF(t *testing.T) {
	t.Parallel()

	b, err := pktline.EncodeLine("NAK")
	require.NoError(t, err)
	require.Equal(t, "0008NAK\n", string(b))
}
