package receivepack

import (
	"context"
	"fmt"

	"github.com/anndream/gitgud/pktline"
	"github.com/anndream/gitgud/protocol"
)

// ApplyPack hands the accumulated commands and the client's packfile bytes
// to the agent for atomic ingestion and ref-update application (the buffer
// state, on body completion). packData may be empty — a
// delete-only push carries no new objects.
func (s *Service) ApplyPack(ctx context.Context, packData []byte) error {
	if s.state != StateBuffer {
		return fmt.Errorf("receivepack: ApplyPack called in state %s", s.state)
	}

	report, err := s.agent.ApplyUpdates(ctx, s.commands, packData)
	if err != nil {
		return fmt.Errorf("receivepack: apply updates: %w", err)
	}

	s.report = report
	s.transition(ctx, StateReport)
	return nil
}

// Report renders the report-status body (report state): an
// "unpack ok"/"unpack <reason>" line, one "ok <ref>"/"ng <ref> <reason>"
// line per command in submission order, and a terminating flush. If the
// client never negotiated report-status, the report phase is skipped
// silently (resolution of that underspecified case) and this
// returns no lines at all.
func (s *Service) Report(ctx context.Context) ([][]byte, error) {
	if s.state != StateReport {
		return nil, fmt.Errorf("receivepack: Report called in state %s", s.state)
	}
	s.transition(ctx, StateDone)

	if !s.capabilities.Has("report-status") {
		return nil, nil
	}

	reason := ""
	if s.report.UnpackErr != nil {
		reason = s.report.UnpackErr.Error()
	}

	unpackLine, err := pktline.EncodeLine(protocol.FormatUnpackStatus(reason))
	if err != nil {
		return nil, err
	}
	lines := [][]byte{unpackLine}

	for _, result := range s.report.Results {
		line, err := pktline.EncodeLine(result.Format())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	lines = append(lines, pktline.Flush)
	return lines, nil
}
