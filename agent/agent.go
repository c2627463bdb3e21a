// Package agent defines the repository-agent interface the wire-protocol
// engine (advertise, uploadpack, receivepack) consumes. It is the one
// abstraction boundary the core never reaches past: no package outside
// agent/ ever touches an on-disk object database directly.
//
// Mirrors the PackfileStorage collaborator (storage.go,
// internal/storage/inmemory.go) — there a client-side object cache behind
// a small Get/Add/Delete/Len interface; here the same "keep the object
// store behind a narrow interface, inject per-request" shape, generalized
// to the full read+write surface a server needs (refs, revision walking,
// pack construction, atomic ref updates).
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/anndream/gitgud/protocol"
)

// ErrNotFound is returned by Head, and by any lookup an Agent implementation
// performs internally, when the named ref or object does not exist.
var ErrNotFound = errors.New("not found")

// NotFoundError carries the offending name alongside ErrNotFound.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("not found: %s", e.Name) }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// UpdateReport is ApplyUpdates' full result: an overall unpack status plus
// one protocol.CommandResult per submitted command, in submission order.
type UpdateReport struct {
	UnpackErr error // nil on success
	Results   []protocol.CommandResult
}

// Agent is the repository-agent interface the advertisement, upload-pack,
// and receive-pack state machines consume. An Agent handle is opened per
// request and is not safe for concurrent use.
//
//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o ../internal/fakes/agent.go . Agent
type Agent interface {
	// Head returns the repository's HEAD reference, or an error satisfying
	// errors.Is(err, ErrNotFound) if HEAD cannot be resolved (an empty
	// repository).
	Head(ctx context.Context) (protocol.Ref, error)

	// Branches returns every refs/heads/* reference, in the agent's own
	// order (advertise.Lines preserves that order verbatim).
	Branches(ctx context.Context) ([]protocol.Ref, error)

	// Tags returns every refs/tags/* reference, in the agent's own order.
	Tags(ctx context.Context) ([]protocol.Ref, error)

	// ObjectExists reports whether oid is present in the object database.
	ObjectExists(ctx context.Context, oid protocol.OID) (bool, error)

	// Revwalk returns every object reachable from wants but not reachable
	// from haves (haves' closure is hidden), in an order build_pack can
	// stream directly.
	Revwalk(ctx context.Context, wants, haves []protocol.OID) ([]protocol.OID, error)

	// BuildPack materializes walk (as produced by Revwalk) into a packfile
	// and returns its raw bytes.
	BuildPack(ctx context.Context, walk []protocol.OID) ([]byte, error)

	// ApplyUpdates ingests packData (the client's packfile; may be empty on
	// a delete-only push) and then applies commands atomically: either
	// every command that validates is applied and an UpdateReport reflects
	// per-command results, or — on an ingestion failure — no ref changes at
	// all.
	ApplyUpdates(ctx context.Context, commands []protocol.Command, packData []byte) (UpdateReport, error)
}
