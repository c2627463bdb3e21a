package protocol

import "strings"

// LineKind classifies a decoded pkt-line payload for the upload-pack and
// receive-pack negotiation loops (the "decoded token refinement").
// Framing itself (flush/PACK detection, length parsing) stays in pktline,
// which is protocol-agnostic; this tagging is specific to the want/have/done
// vocabulary those two state machines speak, so it lives alongside the rest
// of the wire vocabulary in this package instead.
type LineKind int

const (
	// LineOther is any payload that isn't one of the recognized prefixes —
	// receive-pack's command lines and the PKT-LINE "# service=..." prelude
	// both fall through to this.
	LineOther LineKind = iota
	// LineWant is a "want <oid>" line.
	LineWant
	// LineHave is a "have <oid>" line.
	LineHave
	// LineShallow is a "shallow <oid>" line.
	LineShallow
	// LineDone is the literal "done" line.
	LineDone
)

const (
	wantPrefix    = "want "
	havePrefix    = "have "
	shallowPrefix = "shallow "
	doneLine      = "done"
)

// ClassifyLine tags a decoded pkt-line payload and returns the text
// following the recognized prefix (empty for LineDone and LineOther).
// Callers still need ParseOID (and, for the first want line,
// SplitCapabilities) on the returned text — ClassifyLine only tags the
// line, it doesn't validate the OID.
func ClassifyLine(payload string) (kind LineKind, rest string) {
	switch {
	case payload == doneLine:
		return LineDone, ""
	case strings.HasPrefix(payload, wantPrefix):
		return LineWant, payload[len(wantPrefix):]
	case strings.HasPrefix(payload, havePrefix):
		return LineHave, payload[len(havePrefix):]
	case strings.HasPrefix(payload, shallowPrefix):
		return LineShallow, payload[len(shallowPrefix):]
	default:
		return LineOther, payload
	}
}
