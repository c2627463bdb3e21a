package memory_test

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // pack checksums are SHA-1 by format
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/anndream/gitgud/protocol"
)

// buildRefDeltaPack constructs a minimal one-entry pack containing a
// ref-delta against baseOID: an insert-only delta stream (no copy
// instructions) that reconstructs targetData from scratch, the simplest
// valid "deltified representation" the pack format allows. Exercises the
// same thin-pack ingestion path a real client's ref-delta would, without
// needing to compute an actual byte-level diff against baseData.
func buildRefDeltaPack(t *testing.T, baseOID protocol.OID, baseData, targetData []byte) ([]byte, error) {
	t.Helper()

	var delta bytes.Buffer
	delta.Write(encodeDeltaSize(len(baseData)))
	delta.Write(encodeDeltaSize(len(targetData)))
	for remaining := targetData; len(remaining) > 0; {
		chunk := remaining
		if len(chunk) > 127 {
			chunk = chunk[:127]
		}
		delta.WriteByte(byte(len(chunk)))
		delta.Write(chunk)
		remaining = remaining[len(chunk):]
	}

	var body bytes.Buffer
	body.WriteString("PACK")
	writeUint32(&body, 2)
	writeUint32(&body, 1)

	writeEntryHeader(&body, 7, delta.Len()) // type 7 = ref-delta
	body.Write(baseOID[:])
	zw := zlib.NewWriter(&body)
	if _, err := zw.Write(delta.Bytes()); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	sum := sha1.Sum(body.Bytes()) //nolint:gosec // pack checksums are SHA-1 by format
	body.Write(sum[:])
	return body.Bytes(), nil
}

func encodeDeltaSize(size int) []byte {
	var buf []byte
	for {
		b := byte(size & 0x7f)
		size >>= 7
		if size > 0 {
			b |= 0x80
		}
		buf = append(buf, b)
		if size == 0 {
			break
		}
	}
	return buf
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeEntryHeader(buf *bytes.Buffer, typ byte, size int) {
	first := typ<<4 | byte(size&0x0f)
	size >>= 4
	if size == 0 {
		buf.WriteByte(first)
		return
	}
	first |= 0x80
	buf.WriteByte(first)
	for size > 0 {
		b := byte(size & 0x7f)
		size >>= 7
		if size > 0 {
			b |= 0x80
		}
		buf.WriteByte(b)
	}
}
