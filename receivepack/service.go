// Package receivepack implements the ReceivePack service state machine
// (C4): command parsing, packfile ingestion, atomic ref-update application,
// and report-status emission.
//
// Mirrors the wire shape of protocol/client/receivepack.go (the client-side
// counterpart of this exact exchange) and protocol/refupdate.go (the
// ref-update triple this package parses off the wire instead of formatting
// onto it).
package receivepack

import (
	"context"
	"fmt"
	"time"

	"github.com/anndream/gitgud/advertise"
	"github.com/anndream/gitgud/agent"
	"github.com/anndream/gitgud/pktline"
	"github.com/anndream/gitgud/protocol"
	"github.com/anndream/gitgud/trace"
)

// State is the ReceivePack service's position in its state machine:
// "disco → commands → buffer → report → done".
type State int

const (
	StateDisco State = iota
	StateCommands
	StateBuffer
	StateReport
	StateDone
)

func (s State) String() string {
	switch s {
	case StateDisco:
		return "disco"
	case StateCommands:
		return "commands"
	case StateBuffer:
		return "buffer"
	case StateReport:
		return "report"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("receivepack.State(%d)", int(s))
	}
}

// Service is one ReceivePack session: single-owner, single-threaded, scoped
// to one HTTP request. The zero value is not usable; construct
// with New or NewForPost.
type Service struct {
	agent agent.Agent
	state State
	// entered is when the machine arrived in its current state, for the
	// transition observer's elapsed reading.
	entered time.Time

	commands     []protocol.Command
	capabilities protocol.CapabilitySet

	report agent.UpdateReport
}

// New starts a Service at disco, for a caller that drives the full
// advertisement-then-negotiate exchange over a single connection.
func New(a agent.Agent) *Service {
	return &Service{agent: a, state: StateDisco, entered: time.Now(), capabilities: make(protocol.CapabilitySet)}
}

// NewForPost starts a Service already past disco, in the commands state —
// what the HTTP adapter uses for POST /git-receive-pack, since the
// advertisement was already served by a prior GET /info/refs.
func NewForPost(a agent.Agent) *Service {
	s := New(a)
	s.state = StateCommands
	return s
}

// State reports the service's current position.
func (s *Service) State() State { return s.state }

// transition moves the machine to next, reporting the move and the time
// spent in the previous state to the observer on ctx, if any. Re-entering
// buffer while the body accumulates is not a transition and never reports.
func (s *Service) transition(ctx context.Context, next State) {
	if obs := trace.FromContext(ctx); obs != nil {
		obs.OnTransition(string(advertise.ReceivePack), s.state.String(), next.String(), time.Since(s.entered))
	}
	s.state = next
	s.entered = time.Now()
}

// Capabilities returns the capability set negotiated off the first command
// line. Only meaningful once ConsumeCommands has returned.
func (s *Service) Capabilities() protocol.CapabilitySet { return s.capabilities }

// Advertise emits the reference advertisement and transitions to commands
// (disco state). Only valid on a Service built with New.
func (s *Service) Advertise(ctx context.Context) ([][]byte, error) {
	if s.state != StateDisco {
		return nil, fmt.Errorf("receivepack: Advertise called in state %s", s.state)
	}

	lines, err := advertise.Lines(ctx, s.agent, advertise.ReceivePack)
	if err != nil {
		return nil, err
	}

	s.transition(ctx, StateCommands)
	return lines, nil
}

// ConsumeCommands processes decoded tokens up to and including the
// terminating flush, parsing each as an "<old> <new> <ref>" command and
// recording the first command's trailing capability list (the commands
// state). A flush with zero commands ends the session with no
// further output.
func (s *Service) ConsumeCommands(ctx context.Context, tokens []pktline.Token) error {
	if s.state != StateCommands {
		return fmt.Errorf("receivepack: ConsumeCommands called in state %s", s.state)
	}

	first := true
	for _, tok := range tokens {
		if tok.Kind == pktline.KindFlush {
			if len(s.commands) == 0 {
				s.transition(ctx, StateDone)
				return nil
			}
			s.transition(ctx, StateBuffer)
			return nil
		}

		raw := string(tok.Data)
		line := raw
		if first {
			var caps string
			line, caps = protocol.SplitCapabilities(raw)
			s.capabilities = protocol.ParseCapabilityList(caps).Intersect(protocol.ReceivePackCapabilities())
			first = false
		}

		cmd, err := protocol.ParseCommandLine(line)
		if err != nil {
			return fmt.Errorf("receivepack: %w", err)
		}
		s.commands = append(s.commands, cmd)
	}

	return fmt.Errorf("receivepack: commands stream ended without a flush")
}
