// Package pack implements the Git packfile format: encoding a set of
// objects into the PACK binary container upload-pack sends to clients, and
// decoding one back into objects for receive-pack to ingest.
//
// The wire format is unchanged from Git's own: a 12-byte header ("PACK",
// version 2, object count), one variable-length entry per object (a
// type+size header followed by a zlib-deflated payload, or — for
// ref-delta/ofs-delta entries — a base reference followed by the deflated
// delta), and a trailing 20-byte SHA-1 checksum of everything preceding it.
//
// Adapted from the stubbed-out protocol/packfile.go and protocol/delta.go
// (ParsePackfile there returned nil, nil and parseDelta never terminated);
// this package is a from-scratch, working implementation of the same
// format those files documented but never finished, written in the style
// of their doc comments.
package pack

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // pack checksums are SHA-1 by format, not by choice
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/sync/errgroup"

	"github.com/anndream/gitgud/protocol"
	"github.com/anndream/gitgud/protocol/object"
)

// Magic is the 4-byte signature every packfile begins with.
var Magic = [4]byte{'P', 'A', 'C', 'K'}

// Version is the only pack format version this package produces or accepts.
const Version = 2

// ErrBadMagic is returned when a byte stream doesn't begin with "PACK".
var ErrBadMagic = errors.New("pack: bad magic")

// ErrUnsupportedVersion is returned for any pack version other than 2.
var ErrUnsupportedVersion = errors.New("pack: unsupported version")

// ErrChecksumMismatch is returned when the trailing SHA-1 doesn't match the
// bytes that preceded it.
var ErrChecksumMismatch = errors.New("pack: checksum mismatch")

// ErrUnresolvedDelta is returned when a ref-delta entry names a base object
// this pack (and the caller-supplied resolver) cannot find.
var ErrUnresolvedDelta = errors.New("pack: unresolved delta base")

// Object is a single decoded (i.e. delta-resolved) pack entry.
type Object struct {
	Type object.Type
	OID  protocol.OID
	Data []byte
}

// Entry is what the Writer accepts: an object plus its precomputed id. The
// writer always emits full (non-delta) entries — thin, deltified packs are
// an optimization this server doesn't attempt.
type Entry struct {
	Type object.Type
	OID  protocol.OID
	Data []byte
}

// Writer streams a sequence of Entry values into a valid PACK stream.
type Writer struct {
	w    io.Writer
	hash interface {
		io.Writer
		Sum([]byte) []byte
	}
	count int
}

// NewWriter wraps w so every Write call also feeds the running checksum.
func NewWriter(w io.Writer) *Writer {
	h := sha1.New() //nolint:gosec // pack checksums are SHA-1 by format
	return &Writer{w: io.MultiWriter(w, h), hash: h}
}

// WriteHeader writes the 12-byte pack header. count must equal the number
// of entries WriteObject will subsequently be called with.
func (pw *Writer) WriteHeader(count int) error {
	var hdr [12]byte
	copy(hdr[0:4], Magic[:])
	binary.BigEndian.PutUint32(hdr[4:8], Version)
	binary.BigEndian.PutUint32(hdr[8:12], uint32(count)) //nolint:gosec // count is bounded by repository size
	pw.count = count
	_, err := pw.w.Write(hdr[:])
	return err
}

// WriteObject appends one full (non-delta) object entry.
func (pw *Writer) WriteObject(e Entry) error {
	if err := writeEntryHeader(pw.w, e.Type, len(e.Data)); err != nil {
		return err
	}
	zw := zlib.NewWriter(pw.w)
	if _, err := zw.Write(e.Data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("pack: deflate object %s: %w", e.OID, err)
	}
	return zw.Close()
}

// Close writes the trailing checksum and returns it.
func (pw *Writer) Close() (protocol.OID, error) {
	sum := pw.hash.Sum(nil)
	if _, err := pw.w.Write(sum); err != nil {
		return protocol.OID{}, err
	}
	var oid protocol.OID
	copy(oid[:], sum)
	return oid, nil
}

// writeEntryHeader writes a pack object's variable-length type+size header:
// the high bit of each byte signals continuation, bits 4-6 of the first
// byte hold the type, and the remaining bits (the low 4 in the first byte, 7
// in every following byte) hold the size, least-significant-group first.
func writeEntryHeader(w io.Writer, t object.Type, size int) error {
	first := byte(t)<<4 | byte(size&0x0f) //nolint:gosec // size truncated intentionally, see loop below
	size >>= 4
	if size == 0 {
		_, err := w.Write([]byte{first})
		return err
	}
	first |= 0x80
	buf := []byte{first}
	for size > 0 {
		b := byte(size & 0x7f) //nolint:gosec // 7-bit group by construction
		size >>= 7
		if size > 0 {
			b |= 0x80
		}
		buf = append(buf, b)
	}
	_, err := w.Write(buf)
	return err
}

// BuildThin writes a complete pack containing exactly the given objects,
// returning the bytes and the pack's trailing checksum. Used by
// agent implementations that materialize an object set into a packfile for
// upload-pack to stream to the client.
//
// Deflating each entry is independent of every other, so it's done
// concurrently (bounded by GOMAXPROCS) ahead of time; only the sequential,
// checksum-preserving write to the pack stream itself stays single-threaded.
func BuildThin(entries []Entry) ([]byte, protocol.OID, error) {
	compressed := make([][]byte, len(entries))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			data, err := deflateEntry(e)
			if err != nil {
				return err
			}
			compressed[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, protocol.OID{}, err
	}

	var buf bytes.Buffer
	pw := NewWriter(&buf)
	if err := pw.WriteHeader(len(entries)); err != nil {
		return nil, protocol.OID{}, err
	}
	for _, data := range compressed {
		if err := pw.writeRaw(data); err != nil {
			return nil, protocol.OID{}, err
		}
	}
	sum, err := pw.Close()
	if err != nil {
		return nil, protocol.OID{}, err
	}
	return buf.Bytes(), sum, nil
}

// deflateEntry renders e as a standalone header+deflated-payload byte
// slice, the same bytes WriteObject would stream directly — factored out
// so BuildThin can compute every entry's bytes concurrently before writing
// them to the pack stream in order.
func deflateEntry(e Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeEntryHeader(&buf, e.Type, len(e.Data)); err != nil {
		return nil, err
	}
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(e.Data); err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("pack: deflate object %s: %w", e.OID, err)
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeRaw appends a precomputed (header+deflated-payload) entry verbatim,
// still feeding the running pack checksum.
func (pw *Writer) writeRaw(data []byte) error {
	_, err := pw.w.Write(data)
	return err
}
