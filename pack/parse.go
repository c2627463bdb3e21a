package pack

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // pack checksums are SHA-1 by format
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/anndream/gitgud/protocol"
	"github.com/anndream/gitgud/protocol/object"
)

// rawEntry is a single pack entry before delta resolution.
type rawEntry struct {
	typ      object.Type
	data     []byte       // populated for non-delta types
	baseOID  protocol.OID // ref-delta
	baseOfs  int64        // ofs-delta, relative offset back from this entry
	offset   int64        // this entry's offset in the stream, for ofs-delta resolution
	deltaRaw []byte       // populated for delta types, still delta-encoded
}

// Resolver looks up an object this pack doesn't itself contain — needed to
// resolve a ref-delta or thin-pack entry against the repository's existing
// object set ("thin packs reference objects already on the
// server").
type Resolver interface {
	ResolveObject(oid protocol.OID) (object.Type, []byte, error)
}

// Parse reads a full pack stream from r, verifies its checksum, and returns
// every object with deltas resolved. resolver may be nil if the pack is
// known to be self-contained (no ref-delta entries referencing objects
// outside the pack).
//
// The whole stream is read into memory before parsing starts. receive-pack
// already buffers the request body in full before ingestion, so this costs
// nothing extra and sidesteps the bookkeeping a streaming parser would need
// to keep its running checksum in lockstep with however far a buffered
// reader has read ahead.
func Parse(r io.Reader, resolver Resolver) ([]Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pack: read stream: %w", err)
	}
	if len(data) < 12+20 {
		return nil, fmt.Errorf("pack: stream too short (%d bytes)", len(data))
	}

	body, trailer := data[:len(data)-20], data[len(data)-20:]

	hdr := body[:12]
	if !bytes.Equal(hdr[0:4], Magic[:]) {
		return nil, ErrBadMagic
	}
	version := binary.BigEndian.Uint32(hdr[4:8])
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	count := int(binary.BigEndian.Uint32(hdr[8:12]))

	sum := sha1.Sum(body) //nolint:gosec // pack checksums are SHA-1 by format
	if !bytes.Equal(sum[:], trailer) {
		return nil, ErrChecksumMismatch
	}

	cr := &cursor{data: body, pos: 12}
	raws := make([]rawEntry, 0, count)
	for i := 0; i < count; i++ {
		entry, err := readEntry(cr)
		if err != nil {
			return nil, fmt.Errorf("pack: entry %d: %w", i, err)
		}
		raws = append(raws, entry)
	}

	offsetIndex := make(map[int64]int, count)
	for i, e := range raws {
		offsetIndex[e.offset] = i
	}

	byOID := make(map[protocol.OID]*Object, count)
	resolved := make([]*Object, len(raws))
	var resolve func(i int, seen map[int]bool) (*Object, error)
	resolve = func(i int, seen map[int]bool) (*Object, error) {
		if resolved[i] != nil {
			return resolved[i], nil
		}
		if seen[i] {
			return nil, fmt.Errorf("pack: delta cycle at entry %d", i)
		}
		seen[i] = true

		e := raws[i]
		switch e.typ {
		case object.TypeCommit, object.TypeTree, object.TypeBlob, object.TypeTag:
			oid := hashObject(e.typ, e.data)
			obj := &Object{Type: e.typ, OID: oid, Data: e.data}
			resolved[i] = obj
			return obj, nil

		case object.TypeOfsDelta:
			baseIdx, ok := offsetIndex[e.offset-e.baseOfs]
			if !ok {
				return nil, fmt.Errorf("%w: ofs-delta at entry %d has no base at offset %d", ErrUnresolvedDelta, i, e.offset-e.baseOfs)
			}
			base, err := resolve(baseIdx, seen)
			if err != nil {
				return nil, err
			}
			data, err := ApplyDelta(base.Data, e.deltaRaw)
			if err != nil {
				return nil, fmt.Errorf("pack: apply ofs-delta at entry %d: %w", i, err)
			}
			obj := &Object{Type: base.Type, OID: hashObject(base.Type, data), Data: data}
			resolved[i] = obj
			return obj, nil

		case object.TypeRefDelta:
			if baseObj, ok := byOID[e.baseOID]; ok {
				data, err := ApplyDelta(baseObj.Data, e.deltaRaw)
				if err != nil {
					return nil, fmt.Errorf("pack: apply ref-delta at entry %d: %w", i, err)
				}
				obj := &Object{Type: baseObj.Type, OID: hashObject(baseObj.Type, data), Data: data}
				resolved[i] = obj
				return obj, nil
			}
			if resolver == nil {
				return nil, fmt.Errorf("%w: ref-delta at entry %d bases on %s, no resolver", ErrUnresolvedDelta, i, e.baseOID)
			}
			baseType, baseData, err := resolver.ResolveObject(e.baseOID)
			if err != nil {
				return nil, fmt.Errorf("%w: ref-delta at entry %d bases on %s: %s", ErrUnresolvedDelta, i, e.baseOID, err)
			}
			data, err := ApplyDelta(baseData, e.deltaRaw)
			if err != nil {
				return nil, fmt.Errorf("pack: apply ref-delta at entry %d: %w", i, err)
			}
			obj := &Object{Type: baseType, OID: hashObject(baseType, data), Data: data}
			resolved[i] = obj
			return obj, nil

		default:
			return nil, fmt.Errorf("pack: entry %d has invalid type %s", i, e.typ)
		}
	}

	ordered := make([]*Object, 0, len(raws))
	for i, e := range raws {
		obj, err := resolve(i, map[int]bool{})
		if err != nil {
			return nil, err
		}
		if e.typ == object.TypeCommit || e.typ == object.TypeTree || e.typ == object.TypeBlob || e.typ == object.TypeTag {
			byOID[obj.OID] = obj
		}
		ordered = append(ordered, obj)
	}

	out := make([]Object, len(ordered))
	for i, o := range ordered {
		out[i] = *o
	}
	return out, nil
}

func hashObject(t object.Type, data []byte) protocol.OID {
	h := sha1.New() //nolint:gosec // git object ids are SHA-1 by format
	fmt.Fprintf(h, "%s %d\x00", t.Bytes(), len(data))
	h.Write(data)
	var oid protocol.OID
	copy(oid[:], h.Sum(nil))
	return oid
}

// cursor is a position-tracking view over an in-memory pack body. Entry
// offsets are recorded from it directly, so ofs-delta base lookups need no
// separate byte-counting wrapper.
type cursor struct {
	data []byte
	pos  int64
}

func (c *cursor) ReadByte() (byte, error) {
	if c.pos >= int64(len(c.data)) {
		return 0, io.EOF
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) Read(p []byte) (int, error) {
	if c.pos >= int64(len(c.data)) {
		return 0, io.EOF
	}
	n := copy(p, c.data[c.pos:])
	c.pos += int64(n)
	return n, nil
}

func readEntry(c *cursor) (rawEntry, error) {
	start := c.pos
	t, err := readEntryHeader(c)
	if err != nil {
		return rawEntry{}, err
	}

	e := rawEntry{typ: t, offset: start}

	switch t {
	case object.TypeOfsDelta:
		ofs, err := readOffsetDelta(c)
		if err != nil {
			return rawEntry{}, err
		}
		e.baseOfs = ofs
		e.deltaRaw, err = inflate(c)
		if err != nil {
			return rawEntry{}, err
		}
	case object.TypeRefDelta:
		if c.pos+20 > int64(len(c.data)) {
			return rawEntry{}, fmt.Errorf("read ref-delta base: %w", io.ErrUnexpectedEOF)
		}
		copy(e.baseOID[:], c.data[c.pos:c.pos+20])
		c.pos += 20
		e.deltaRaw, err = inflate(c)
		if err != nil {
			return rawEntry{}, err
		}
	default:
		e.data, err = inflate(c)
		if err != nil {
			return rawEntry{}, err
		}
	}

	return e, nil
}

// readEntryHeader reads the variable-length type+size header described in
// writeEntryHeader's doc comment. The size itself only matters for
// validating the pack on write; on read the deflate stream is
// self-delimiting, so the decoded size is discarded here.
func readEntryHeader(c *cursor) (object.Type, error) {
	b, err := c.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("read entry header: %w", err)
	}
	t := object.Type((b >> 4) & 0x07)
	for b&0x80 != 0 {
		b, err = c.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("read entry header: %w", err)
		}
	}
	return t, nil
}

// readOffsetDelta reads the base-offset varint ofs-delta entries prepend
// before their deflated payload (pack-format's "offset encoding", base-128
// with a +1 continuation bias).
func readOffsetDelta(c *cursor) (int64, error) {
	b, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	v := int64(b & 0x7f)
	for b&0x80 != 0 {
		b, err = c.ReadByte()
		if err != nil {
			return 0, err
		}
		v = ((v + 1) << 7) | int64(b&0x7f)
	}
	return v, nil
}

func inflate(c *cursor) ([]byte, error) {
	zr, err := zlib.NewReader(c)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return data, nil
}
