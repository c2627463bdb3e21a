package protocol

import (
	"errors"
	"fmt"
)

// ErrNotOurRef is returned by upload-pack when a "want" line names an object
// id the agent does not have.
var ErrNotOurRef = errors.New("not our ref")

// NotOurRefError carries the offending object id alongside ErrNotOurRef.
type NotOurRefError struct {
	Wanted OID
}

func (e *NotOurRefError) Error() string {
	return fmt.Sprintf("upload-pack: want %s: not our ref", e.Wanted)
}

func (e *NotOurRefError) Unwrap() error { return ErrNotOurRef }

// ErrUnpackFailed is returned by receive-pack when the incoming packfile
// could not be ingested, before any ref update is attempted. It becomes
// the reason reported on the report-status "unpack" line.
var ErrUnpackFailed = errors.New("unpack failed")

// UnpackFailedError carries the underlying ingestion failure alongside
// ErrUnpackFailed.
type UnpackFailedError struct {
	Err error
}

func (e *UnpackFailedError) Error() string {
	return fmt.Sprintf("receive-pack: unpack failed: %s", e.Err)
}

func (e *UnpackFailedError) Unwrap() error { return ErrUnpackFailed }

// ErrEmptyCommandList names a receive-pack request that carries no commands
// at all. The receivepack state machine does not return it: a request with
// no commands ends in the done state with no output.
var ErrEmptyCommandList = errors.New("no commands in request")

// ErrNoCommonAncestor names a negotiation whose "have" set is exhausted
// without reaching a common base. The uploadpack state machine does not
// return it: a flush before "done" is handled like "done", with NAK when
// no have matched.
var ErrNoCommonAncestor = errors.New("negotiation exhausted without a common ancestor")
