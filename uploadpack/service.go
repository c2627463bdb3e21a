// Package uploadpack implements the UploadPack service state machine (C3):
// want/have negotiation, ACK/NAK emission under the baseline, multi_ack, and
// multi_ack_detailed policies, and packfile construction for the resulting
// object closure.
//
// Mirrors protocol/client/uploadpack.go and protocol/client/fetch.go — the
// client-side counterpart of this exact exchange, generalized from "send
// wants, read the pack" to "receive wants, decide haves, send the pack".
package uploadpack

import (
	"context"
	"fmt"
	"time"

	"github.com/anndream/gitgud/advertise"
	"github.com/anndream/gitgud/agent"
	"github.com/anndream/gitgud/log"
	"github.com/anndream/gitgud/pktline"
	"github.com/anndream/gitgud/protocol"
	"github.com/anndream/gitgud/trace"
)

// State is the UploadPack service's position in its state machine:
// "disco → wants → haves → done".
type State int

const (
	StateDisco State = iota
	StateWants
	StateHaves
	StateDone
)

func (s State) String() string {
	switch s {
	case StateDisco:
		return "disco"
	case StateWants:
		return "wants"
	case StateHaves:
		return "haves"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("uploadpack.State(%d)", int(s))
	}
}

// Service is one UploadPack negotiation: single-owner, single-threaded, and
// scoped to one HTTP request. The zero value is not usable; construct with
// New or NewForPost.
type Service struct {
	agent agent.Agent
	state State
	// entered is when the machine arrived in its current state, for the
	// transition observer's elapsed reading.
	entered time.Time

	wants   []protocol.OID
	wantSet map[protocol.OID]struct{}
	shallow []protocol.OID

	capabilities protocol.CapabilitySet

	haveOrder []protocol.OID
	matched   map[protocol.OID]struct{}
}

// New starts a Service at the beginning of the state machine, disco
// included — for a caller that drives the full advertisement-then-negotiate
// exchange over a single connection.
func New(a agent.Agent) *Service {
	return &Service{
		agent:        a,
		state:        StateDisco,
		entered:      time.Now(),
		wantSet:      make(map[protocol.OID]struct{}),
		matched:      make(map[protocol.OID]struct{}),
		capabilities: make(protocol.CapabilitySet),
	}
}

// NewForPost starts a Service already past disco, in the wants state. This
// is what the HTTP adapter uses for POST /git-upload-pack: the
// advertisement was already served by a prior GET /info/refs request, so
// the request body this Service parses begins directly with want lines.
func NewForPost(a agent.Agent) *Service {
	s := New(a)
	s.state = StateWants
	return s
}

// State reports the service's current position.
func (s *Service) State() State { return s.state }

// transition moves the machine to next, reporting the move and the time
// spent in the previous state to the observer on ctx, if any.
func (s *Service) transition(ctx context.Context, next State) {
	if obs := trace.FromContext(ctx); obs != nil {
		obs.OnTransition(string(advertise.UploadPack), s.state.String(), next.String(), time.Since(s.entered))
	}
	s.state = next
	s.entered = time.Now()
}

// Advertise emits the reference advertisement and transitions to wants
// (disco state). Only valid on a Service built with New.
func (s *Service) Advertise(ctx context.Context) ([][]byte, error) {
	if s.state != StateDisco {
		return nil, fmt.Errorf("uploadpack: Advertise called in state %s", s.state)
	}

	lines, err := advertise.Lines(ctx, s.agent, advertise.UploadPack)
	if err != nil {
		return nil, err
	}

	s.transition(ctx, StateWants)
	return lines, nil
}

// ConsumeWants processes decoded tokens up to and including the terminating
// flush, accumulating wants and shallow tokens and parsing the first want
// line's capability list (wants state).
func (s *Service) ConsumeWants(ctx context.Context, tokens []pktline.Token) error {
	if s.state != StateWants {
		return fmt.Errorf("uploadpack: ConsumeWants called in state %s", s.state)
	}

	logger := log.FromContext(ctx)
	first := true

	for _, tok := range tokens {
		if tok.Kind == pktline.KindFlush {
			if len(s.wantSet) == 0 {
				s.transition(ctx, StateDone)
				return nil
			}
			s.transition(ctx, StateHaves)
			return nil
		}

		kind, rest := protocol.ClassifyLine(string(tok.Data))
		switch kind {
		case protocol.LineWant:
			oidHex := rest
			if first {
				var caps string
				oidHex, caps = splitWantCapabilities(rest)
				s.capabilities = protocol.ParseCapabilityList(caps).Intersect(protocol.UploadPackCapabilities())
				first = false
			}

			oid, err := protocol.ParseOID(oidHex)
			if err != nil {
				return fmt.Errorf("uploadpack: parsing want line %q: %w", tok.Data, err)
			}

			exists, err := s.agent.ObjectExists(ctx, oid)
			if err != nil {
				return fmt.Errorf("uploadpack: checking want %s: %w", oid, err)
			}
			if !exists {
				return &protocol.NotOurRefError{Wanted: oid}
			}

			if _, dup := s.wantSet[oid]; !dup {
				s.wantSet[oid] = struct{}{}
				s.wants = append(s.wants, oid)
			}
		case protocol.LineShallow:
			oid, err := protocol.ParseOID(rest)
			if err != nil {
				return fmt.Errorf("uploadpack: parsing shallow line %q: %w", tok.Data, err)
			}
			s.shallow = append(s.shallow, oid)
			if logger != nil {
				logger.Debug("upload-pack: shallow token recorded, depth truncation not implemented", "oid", oid)
			}
		default:
			return fmt.Errorf("uploadpack: unexpected line in wants state: %q", tok.Data)
		}
	}

	return fmt.Errorf("uploadpack: wants stream ended without a flush")
}

// splitWantCapabilities splits the first want line's payload (everything
// after "want ") into the oid hex and the trailing space-separated
// capability list, if any.
func splitWantCapabilities(rest string) (oidHex, caps string) {
	for i := 0; i < len(rest); i++ {
		if rest[i] == ' ' {
			return rest[:i], rest[i+1:]
		}
	}
	return rest, ""
}
