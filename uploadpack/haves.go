package uploadpack

import (
	"context"
	"fmt"

	"github.com/anndream/gitgud/pktline"
	"github.com/anndream/gitgud/protocol"
)

// ConsumeHaves processes decoded tokens through to "done" or a terminating
// flush, matching each have against the agent's object store and emitting
// ACK/NAK lines per the negotiated capability's policy (the haves state):
//
//   - baseline: the first matching have ends negotiation immediately with a
//     plain "ACK <oid>".
//   - multi_ack: every match gets "ACK <oid> continue"; the round closes
//     with a final "ACK <oid>" (no status) or "NAK" if nothing matched.
//   - multi_ack_detailed: every match gets "ACK <oid> common"; the round
//     closes with "ACK <oid> ready" (using the last match) or "NAK".
//
// This server only ever drives one buffered HTTP request/response per
// negotiation, so a flush reached before "done" is treated the
// same as "done": there is no further round to ask for.
func (s *Service) ConsumeHaves(ctx context.Context, tokens []pktline.Token) ([][]byte, error) {
	if s.state != StateHaves {
		return nil, fmt.Errorf("uploadpack: ConsumeHaves called in state %s", s.state)
	}

	baseline := !s.capabilities.Has("multi_ack") && !s.capabilities.Has("multi_ack_detailed")

	var acks [][]byte
	for _, tok := range tokens {
		if tok.Kind == pktline.KindFlush {
			return s.finishHaves(ctx, acks)
		}

		kind, rest := protocol.ClassifyLine(string(tok.Data))
		switch kind {
		case protocol.LineDone:
			return s.finishHaves(ctx, acks)
		case protocol.LineHave:
			oid, err := protocol.ParseOID(rest)
			if err != nil {
				return nil, fmt.Errorf("uploadpack: parsing have line %q: %w", tok.Data, err)
			}

			exists, err := s.agent.ObjectExists(ctx, oid)
			if err != nil {
				return nil, fmt.Errorf("uploadpack: checking have %s: %w", oid, err)
			}
			if !exists {
				continue
			}
			if _, dup := s.matched[oid]; dup {
				continue
			}
			s.matched[oid] = struct{}{}
			s.haveOrder = append(s.haveOrder, oid)

			switch {
			case s.capabilities.Has("multi_ack_detailed"):
				line, err := pktline.EncodeLine(protocol.FormatACK(oid, protocol.AckCommon))
				if err != nil {
					return nil, err
				}
				acks = append(acks, line)
			case s.capabilities.Has("multi_ack"):
				line, err := pktline.EncodeLine(protocol.FormatACK(oid, protocol.AckContinue))
				if err != nil {
					return nil, err
				}
				acks = append(acks, line)
			default:
				line, err := pktline.EncodeLine(protocol.FormatACK(oid, ""))
				if err != nil {
					return nil, err
				}
				acks = append(acks, line)
				if baseline {
					return s.finishHaves(ctx, acks)
				}
			}
		default:
			return nil, fmt.Errorf("uploadpack: unexpected line in haves state: %q", tok.Data)
		}
	}

	return s.finishHaves(ctx, acks)
}

// finishHaves appends the round's closing ACK/NAK line, transitions to
// done, and returns the accumulated ACK output.
func (s *Service) finishHaves(ctx context.Context, acks [][]byte) ([][]byte, error) {
	switch {
	case len(s.haveOrder) == 0:
		nak, err := pktline.EncodeLine(protocol.FormatNAK())
		if err != nil {
			return nil, err
		}
		acks = append(acks, nak)
	case s.capabilities.Has("multi_ack_detailed"):
		last := s.haveOrder[len(s.haveOrder)-1]
		line, err := pktline.EncodeLine(protocol.FormatACK(last, protocol.AckReady))
		if err != nil {
			return nil, err
		}
		acks = append(acks, line)
	case s.capabilities.Has("multi_ack"):
		last := s.haveOrder[len(s.haveOrder)-1]
		line, err := pktline.EncodeLine(protocol.FormatACK(last, ""))
		if err != nil {
			return nil, err
		}
		acks = append(acks, line)
	}

	s.transition(ctx, StateDone)
	return acks, nil
}

// BuildPackfile walks the revision graph from wants, hiding everything
// reachable from the matched haves, and hands the result to the agent's
// pack builder (the "Packfile construction"). Valid only once
// negotiation has reached done.
func (s *Service) BuildPackfile(ctx context.Context) ([]byte, error) {
	if s.state != StateDone {
		return nil, fmt.Errorf("uploadpack: BuildPackfile called before negotiation finished (state %s)", s.state)
	}

	walk, err := s.agent.Revwalk(ctx, s.wants, s.haveOrder)
	if err != nil {
		return nil, fmt.Errorf("uploadpack: revwalk: %w", err)
	}

	pack, err := s.agent.BuildPack(ctx, walk)
	if err != nil {
		return nil, fmt.Errorf("uploadpack: build pack: %w", err)
	}
	return pack, nil
}
