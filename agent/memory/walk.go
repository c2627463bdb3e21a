package memory

import (
	"context"
	"fmt"

	"github.com/anndream/gitgud/agent"
	"github.com/anndream/gitgud/pack"
	"github.com/anndream/gitgud/protocol"
	"github.com/anndream/gitgud/protocol/object"
)

// Revwalk implements agent.Agent. It computes haves' full closure (every
// object reachable from any have) and then walks wants, collecting every
// object reachable from a want that isn't already in that closure —
// commits via their tree and parents, trees via their entries, tags via
// their target. This in-memory agent always returns the full closure; it
// does not act on shallow/deepen hints.
func (s *Store) Revwalk(ctx context.Context, wants, haves []protocol.OID) ([]protocol.OID, error) {
	hidden := make(map[protocol.OID]bool)
	for _, h := range haves {
		if err := s.walkReachable(h, hidden); err != nil {
			return nil, fmt.Errorf("revwalk: have %s: %w", h, err)
		}
	}

	var order []protocol.OID
	visited := make(map[protocol.OID]bool, len(hidden))
	for oid := range hidden {
		visited[oid] = true
	}

	var walk func(oid protocol.OID) error
	walk = func(oid protocol.OID) error {
		if visited[oid] {
			return nil
		}
		visited[oid] = true

		typ, data, err := s.ResolveObject(oid)
		if err != nil {
			return fmt.Errorf("%w: %s", err, oid)
		}

		switch typ {
		case object.TypeCommit:
			tree, parents, err := parseCommit(data)
			if err != nil {
				return err
			}
			if err := walk(tree); err != nil {
				return err
			}
			for _, p := range parents {
				if err := walk(p); err != nil {
					return err
				}
			}
		case object.TypeTree:
			entries, err := parseTree(data)
			if err != nil {
				return err
			}
			for _, e := range entries {
				if err := walk(e.oid); err != nil {
					return err
				}
			}
		case object.TypeTag:
			target, err := parseTagTarget(data)
			if err != nil {
				return err
			}
			if err := walk(target); err != nil {
				return err
			}
		}

		order = append(order, oid)
		return nil
	}

	for _, w := range wants {
		if err := walk(w); err != nil {
			return nil, fmt.Errorf("revwalk: want %s: %w", w, err)
		}
	}

	return order, nil
}

// walkReachable marks every object reachable from start as hidden, without
// recording a pack order — used to build haves' closure.
func (s *Store) walkReachable(start protocol.OID, hidden map[protocol.OID]bool) error {
	if hidden[start] {
		return nil
	}
	hidden[start] = true

	typ, data, err := s.ResolveObject(start)
	if err != nil {
		return fmt.Errorf("%w: %s", err, start)
	}

	switch typ {
	case object.TypeCommit:
		tree, parents, err := parseCommit(data)
		if err != nil {
			return err
		}
		if err := s.walkReachable(tree, hidden); err != nil {
			return err
		}
		for _, p := range parents {
			if err := s.walkReachable(p, hidden); err != nil {
				return err
			}
		}
	case object.TypeTree:
		entries, err := parseTree(data)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := s.walkReachable(e.oid, hidden); err != nil {
				return err
			}
		}
	case object.TypeTag:
		target, err := parseTagTarget(data)
		if err != nil {
			return err
		}
		return s.walkReachable(target, hidden)
	}
	return nil
}

// BuildPack implements agent.Agent, materializing walk (as produced by
// Revwalk) into a packfile via pack.BuildThin.
func (s *Store) BuildPack(ctx context.Context, walk []protocol.OID) ([]byte, error) {
	entries := make([]pack.Entry, 0, len(walk))
	for _, oid := range walk {
		typ, data, err := s.ResolveObject(oid)
		if err != nil {
			return nil, fmt.Errorf("build pack: %w", err)
		}
		entries = append(entries, pack.Entry{Type: typ, OID: oid, Data: data})
	}

	data, _, err := pack.BuildThin(entries)
	if err != nil {
		return nil, fmt.Errorf("build pack: %w", err)
	}
	return data, nil
}

var _ agent.Agent = (*Store)(nil)
