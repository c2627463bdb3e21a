package protocol

import "fmt"

// AckStatus is the optional trailing status word on a multi_ack/
// multi_ack_detailed ACK line.
type AckStatus string

const (
	// AckContinue is multi_ack's "keep going" acknowledgement.
	AckContinue AckStatus = "continue"
	// AckCommon is multi_ack_detailed's "this is a common ancestor" ack.
	AckCommon AckStatus = "common"
	// AckReady is multi_ack_detailed's "I can build the pack now" ack.
	AckReady AckStatus = "ready"
)

// FormatNAK renders the literal "NAK" payload.
func FormatNAK() string { return "NAK" }

// FormatACK renders "ACK <oid>" or, if status is non-empty, "ACK <oid>
// <status>".
func FormatACK(oid OID, status AckStatus) string {
	if status == "" {
		return fmt.Sprintf("ACK %s", oid)
	}
	return fmt.Sprintf("ACK %s %s", oid, status)
}

// CommandResult is one line of a receive-pack report-status body: "ok
// <ref>" on success, "ng <ref> <reason>" on failure.
type CommandResult struct {
	RefName string
	Reason  string // empty means success
}

// FormatUnpackStatus renders the first line of a report-status body:
// "unpack ok" or "unpack <reason>".
func FormatUnpackStatus(reason string) string {
	if reason == "" {
		return "unpack ok"
	}
	return "unpack " + reason
}

// Ok reports whether this result represents a successful command.
func (r CommandResult) Ok() bool { return r.Reason == "" }

// Format renders a single report-status command line.
func (r CommandResult) Format() string {
	if r.Reason == "" {
		return "ok " + r.RefName
	}
	return fmt.Sprintf("ng %s %s", r.RefName, r.Reason)
}
