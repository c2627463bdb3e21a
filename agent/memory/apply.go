package memory

import (
	"bytes"
	"context"
	"fmt"

	"github.com/anndream/gitgud/agent"
	"github.com/anndream/gitgud/pack"
	"github.com/anndream/gitgud/protocol"
)

// ApplyUpdates implements agent.Agent. It ingests packData against this
// Store (resolving ref-deltas against objects already present, the
// thin-pack case), then applies every command that validates. If ingestion
// fails, no ref is touched and
// UpdateReport.UnpackErr carries the failure; otherwise every command is
// evaluated independently and the store is mutated only with commands that
// pass validation — a failure on one ref does not roll back another.
func (s *Store) ApplyUpdates(ctx context.Context, commands []protocol.Command, packData []byte) (agent.UpdateReport, error) {
	if len(packData) > 0 {
		objs, err := pack.Parse(bytes.NewReader(packData), s)
		if err != nil {
			return agent.UpdateReport{UnpackErr: err}, nil
		}
		s.mu.Lock()
		for _, o := range objs {
			s.objects[o.OID] = storedObject{typ: o.Type, data: o.Data}
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]protocol.CommandResult, 0, len(commands))
	for _, cmd := range commands {
		reason := s.validateCommandLocked(cmd)
		if reason != "" {
			results = append(results, protocol.CommandResult{RefName: cmd.RefName, Reason: reason})
			continue
		}

		switch {
		case cmd.IsNoop():
			// accepted, store untouched
		case cmd.IsDelete():
			s.deleteRefLocked(cmd.RefName)
		default:
			s.setRefLocked(cmd.RefName, cmd.New)
		}
		results = append(results, protocol.CommandResult{RefName: cmd.RefName})
	}

	return agent.UpdateReport{Results: results}, nil
}

// validateCommandLocked checks cmd's old-oid precondition against the
// store's current state, returning a non-empty failure reason if the
// command cannot be applied. Caller holds s.mu.
func (s *Store) validateCommandLocked(cmd protocol.Command) string {
	current, exists := s.refs[cmd.RefName]

	switch {
	case cmd.IsCreate():
		if exists {
			return "already exists"
		}
	case cmd.IsDelete():
		if !exists {
			return "no such ref"
		}
		if current.OID != cmd.Old {
			return fmt.Sprintf("old object id mismatch: expected %s, ref is at %s", cmd.Old, current.OID)
		}
	default:
		if !exists {
			return "no such ref"
		}
		if current.OID != cmd.Old {
			return fmt.Sprintf("old object id mismatch: expected %s, ref is at %s", cmd.Old, current.OID)
		}
		if !cmd.New.IsZero() {
			if _, ok := s.objects[cmd.New]; !ok {
				return fmt.Sprintf("new object %s not found", cmd.New)
			}
		}
	}

	return ""
}
