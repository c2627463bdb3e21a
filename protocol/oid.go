// Package protocol holds the wire-level vocabulary shared by the
// advertisement, upload-pack, and receive-pack packages: object identifiers,
// references, capability sets, and ref-update commands.
package protocol

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// OIDSize is the length, in bytes, of a Git object identifier under SHA-1,
// the only hash algorithm this server speaks on the wire. A fixed-size
// array keeps OIDs comparable and usable as map keys.
const OIDSize = 20

// ErrBadOidHex is returned when a 40-character hex object id fails to parse.
var ErrBadOidHex = errors.New("bad object id hex")

// BadOidHexError carries the offending string alongside ErrBadOidHex.
type BadOidHexError struct {
	Hex string
	Err error
}

func (e *BadOidHexError) Error() string {
	return fmt.Sprintf("bad object id hex %q: %s", e.Hex, e.Err)
}

func (e *BadOidHexError) Unwrap() error { return ErrBadOidHex }

// OID is a Git object identifier: 20 raw SHA-1 bytes.
type OID [OIDSize]byte

// Zero is the all-zeros OID used on the wire to mean "no object" (ref
// creation's old side, ref deletion's new side).
var Zero OID

// ParseOID decodes a 40-character lowercase hex string into an OID.
func ParseOID(s string) (OID, error) {
	var oid OID
	if len(s) != OIDSize*2 {
		return oid, &BadOidHexError{Hex: s, Err: fmt.Errorf("want %d hex characters, got %d", OIDSize*2, len(s))}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return oid, &BadOidHexError{Hex: s, Err: err}
	}
	copy(oid[:], b)
	return oid, nil
}

// MustParseOID is ParseOID but panics on error; for tests and constants.
func MustParseOID(s string) OID {
	oid, err := ParseOID(s)
	if err != nil {
		panic(err)
	}
	return oid
}

// String renders the OID as 40 lowercase hex characters.
func (o OID) String() string {
	return hex.EncodeToString(o[:])
}

// Short renders the first 8 hex characters of the OID, Git's conventional
// abbreviation length.
func (o OID) Short() string {
	return o.String()[:8]
}

// IsZero reports whether this is the all-zeros OID.
func (o OID) IsZero() bool {
	return o == Zero
}
