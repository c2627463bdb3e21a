package protocol

import (
	"fmt"
	"strings"
)

// Command is a single ref-update request from a receive-pack client: a
// triple of old object id, new object id, and the full ref name the update
// targets.
//
// Adapted from the client-side RefUpdateRequest in protocol/refupdate.go,
// which only ever formatted one outgoing command; this type is parsed from
// the wire instead, and carries a Result field the receive-pack state
// machine fills in once the command has been applied.
type Command struct {
	Old, New OID
	RefName  string

	// Result is set by the receive-pack state machine after apply_updates
	// returns; empty until then. "" means success ("ok"), any other value
	// is the failure reason reported as "ng <ref> <reason>".
	Result string
}

// IsCreate reports whether this command creates a ref that did not exist.
func (c Command) IsCreate() bool { return c.Old.IsZero() && !c.New.IsZero() }

// IsDelete reports whether this command deletes an existing ref.
func (c Command) IsDelete() bool { return !c.Old.IsZero() && c.New.IsZero() }

// IsNoop reports whether old and new are identical — a command that is
// accepted and reported "ok" without touching the ref store.
func (c Command) IsNoop() bool { return c.Old == c.New }

// Ok reports whether the command was applied successfully. Only meaningful
// after the receive-pack state machine has run apply_updates.
func (c Command) Ok() bool { return c.Result == "" }

// ErrBadCommandLine is returned when a receive-pack command line does not
// match "<old> <new> <ref>".
var ErrBadCommandLine = fmt.Errorf("malformed receive-pack command line")

// BadCommandLineError carries the offending line alongside ErrBadCommandLine.
type BadCommandLineError struct {
	Line string
	Err  error
}

func (e *BadCommandLineError) Error() string {
	return fmt.Sprintf("malformed command line %q: %s", e.Line, e.Err)
}

func (e *BadCommandLineError) Unwrap() error { return ErrBadCommandLine }

// ParseCommandLine parses "<old-oid> <new-oid> <ref-name>" optionally
// followed by a NUL and a capability list (only valid, and only parsed, on
// the first command of a batch — callers strip the NUL section themselves
// before calling this, see receivepack.Service).
func ParseCommandLine(line string) (Command, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 {
		return Command{}, &BadCommandLineError{Line: line, Err: fmt.Errorf("want 3 space-separated fields, got %d", len(parts))}
	}

	oldOID, err := ParseOID(parts[0])
	if err != nil {
		return Command{}, &BadCommandLineError{Line: line, Err: fmt.Errorf("old object id: %w", err)}
	}
	newOID, err := ParseOID(parts[1])
	if err != nil {
		return Command{}, &BadCommandLineError{Line: line, Err: fmt.Errorf("new object id: %w", err)}
	}
	if parts[2] == "" {
		return Command{}, &BadCommandLineError{Line: line, Err: fmt.Errorf("empty ref name")}
	}

	return Command{Old: oldOID, New: newOID, RefName: parts[2]}, nil
}

// SplitCapabilities splits a command or want line on its first NUL byte,
// returning the line proper and the trailing capability-list text (empty if
// there was no NUL).
func SplitCapabilities(raw string) (line, capabilities string) {
	if i := strings.IndexByte(raw, 0); i >= 0 {
		return raw[:i], raw[i+1:]
	}
	return raw, ""
}
