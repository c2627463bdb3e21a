package protocol

import "strings"

// CapabilitySet is the space-separated token list a service advertises or a
// client negotiates (the "Capability set"). It's fixed per service,
// not per-ref, and attaches to only the first advertised ref line.
type CapabilitySet map[string]struct{}

// NewCapabilitySet builds a set from a list of tokens.
func NewCapabilitySet(tokens ...string) CapabilitySet {
	s := make(CapabilitySet, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// UploadPackCapabilities is the fixed set upload-pack advertises.
func UploadPackCapabilities() CapabilitySet {
	return NewCapabilitySet("thin-pack", "multi_ack", "multi_ack_detailed")
}

// ReceivePackCapabilities is the fixed set receive-pack advertises.
func ReceivePackCapabilities() CapabilitySet {
	return NewCapabilitySet("report-status", "delete-refs")
}

// Has reports whether token is present in the set.
func (s CapabilitySet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// String renders the set as a space-separated, order-stable token list. The
// advertised sets are small and fixed, so a deterministic hand-written order
// (rather than a generic sorted-map render) keeps wire output predictable:
// the five known tokens come first in one fixed order, anything else falls back
// to map iteration order (only relevant for client-negotiated subsets, which
// are never re-serialized onto the wire by this server).
func (s CapabilitySet) String() string {
	preferred := []string{"thin-pack", "multi_ack", "multi_ack_detailed", "report-status", "delete-refs"}
	var tokens []string
	seen := make(map[string]struct{}, len(s))
	for _, p := range preferred {
		if s.Has(p) {
			tokens = append(tokens, p)
			seen[p] = struct{}{}
		}
	}
	for t := range s {
		if _, ok := seen[t]; !ok {
			tokens = append(tokens, t)
		}
	}
	return strings.Join(tokens, " ")
}

// ParseCapabilityList splits a space-separated capability token list (as
// found after the NUL byte on the first want/command line, or after the
// NUL on the first advertised ref line) into a CapabilitySet. Unknown
// tokens are recorded, not rejected — an unrecognized capability is
// ignored rather than treated as an error.
func ParseCapabilityList(s string) CapabilitySet {
	fields := strings.Fields(s)
	return NewCapabilitySet(fields...)
}

// Intersect returns the subset of advertised that also appears in
// requested — the client's capability list is only ever meaningful when
// narrowed to what was actually advertised ("subset check
// against the advertised set").
func (s CapabilitySet) Intersect(advertised CapabilitySet) CapabilitySet {
	out := make(CapabilitySet)
	for t := range s {
		if advertised.Has(t) {
			out[t] = struct{}{}
		}
	}
	return out
}
