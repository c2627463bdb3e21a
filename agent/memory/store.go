// Package memory implements agent.Agent entirely in process memory: refs
// and objects both live in Go maps, nothing touches disk. It is the
// reference Agent this module ships, used both as a runnable server
// backend and as the fixture every other package's tests build their
// Agent fakes against.
//
// Mirrors the PackfileStorage/InMemoryStorage pair (storage.go,
// internal/storage/inmemory.go): the same "small map behind a narrow
// interface" shape, generalized from a client-side object cache to a full
// read+write repository store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/anndream/gitgud/agent"
	"github.com/anndream/gitgud/protocol"
	"github.com/anndream/gitgud/protocol/object"
)

// storedObject is one object kept in a Store: its type and raw (inflated)
// content, keyed externally by the Store's objects map.
type storedObject struct {
	typ  object.Type
	data []byte
}

// Store is an in-memory repository: a ref map and an object map guarded by
// one mutex. The zero value is not usable; construct with NewStore.
type Store struct {
	mu sync.RWMutex

	// refs is keyed by full wire name ("HEAD", "refs/heads/main", ...).
	refs map[string]protocol.Ref
	// headTarget is the full ref name HEAD points at ("refs/heads/main"),
	// empty if HEAD is unborn.
	headTarget string

	objects map[protocol.OID]storedObject
}

// NewStore returns an empty repository: no HEAD, no branches, no objects —
// the state a brand-new repository is in before its first push.
func NewStore() *Store {
	return &Store{
		refs:    make(map[string]protocol.Ref),
		objects: make(map[protocol.OID]storedObject),
	}
}

// SeedObject installs an object directly, bypassing packfile ingestion.
// Exported for tests and for any offline repository-import tooling; the
// HTTP-facing write path always goes through ApplyUpdates instead.
func (s *Store) SeedObject(typ object.Type, oid protocol.OID, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[oid] = storedObject{typ: typ, data: data}
}

// SeedRef installs a ref directly, bypassing ApplyUpdates' validation. If
// name is "HEAD", target must already exist as a branch ref.
func (s *Store) SeedRef(name string, oid protocol.OID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setRefLocked(name, oid)
}

// SeedSymbolicHead points HEAD at the given branch ref name (e.g.
// "refs/heads/main"), the way a fresh repository's HEAD is a symref rather
// than a direct pointer.
func (s *Store) SeedSymbolicHead(branchFullName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headTarget = branchFullName
}

func (s *Store) setRefLocked(fullName string, oid protocol.OID) {
	prefix, name, err := protocol.ParseFullRefName(fullName)
	if err != nil {
		prefix, name = "", fullName
	}
	s.refs[fullName] = protocol.Ref{Prefix: prefix, Name: name, OID: oid}
}

func (s *Store) deleteRefLocked(fullName string) {
	delete(s.refs, fullName)
}

// Head implements agent.Agent.
func (s *Store) Head(ctx context.Context) (protocol.Ref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	target := s.headTarget
	if target == "" {
		target = "refs/heads/main"
	}
	ref, ok := s.refs[target]
	if !ok {
		return protocol.Ref{}, &agent.NotFoundError{Name: "HEAD"}
	}
	return protocol.Ref{Prefix: "", Name: "HEAD", OID: ref.OID}, nil
}

// Branches implements agent.Agent.
func (s *Store) Branches(ctx context.Context) ([]protocol.Ref, error) {
	return s.refsWithPrefix(protocol.HeadsPrefix), nil
}

// Tags implements agent.Agent.
func (s *Store) Tags(ctx context.Context) ([]protocol.Ref, error) {
	return s.refsWithPrefix(protocol.TagsPrefix), nil
}

func (s *Store) refsWithPrefix(prefix string) []protocol.Ref {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]protocol.Ref, 0, len(s.refs))
	for _, ref := range s.refs {
		if ref.Prefix == prefix {
			out = append(out, ref)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ObjectExists implements agent.Agent.
func (s *Store) ObjectExists(ctx context.Context, oid protocol.OID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[oid]
	return ok, nil
}

// ResolveObject implements pack.Resolver, letting the pack parser resolve
// ref-delta entries against objects this Store already has — the thin-pack
// case a pushed pack referencing objects it doesn't carry describes.
func (s *Store) ResolveObject(oid protocol.OID) (object.Type, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[oid]
	if !ok {
		return 0, nil, &agent.NotFoundError{Name: oid.String()}
	}
	return obj.typ, obj.data, nil
}
