package receivepack

import (
	"bytes"
	"context"
	"fmt"

	"github.com/anndream/gitgud/agent"
	"github.com/anndream/gitgud/pktline"
)

// Run drives a complete ReceivePack session over a single buffered request
// body (the "MUST fully buffer the body"). It returns the raw
// report-status response body, empty if the client never negotiated
// report-status.
func Run(ctx context.Context, a agent.Agent, body []byte) ([]byte, error) {
	tokens, packTail, err := pktline.DecodeAll(body)
	if err != nil {
		return nil, fmt.Errorf("receivepack: decoding request: %w", err)
	}

	svc := NewForPost(a)

	if err := svc.ConsumeCommands(ctx, tokens); err != nil {
		return nil, err
	}

	if svc.State() == StateDone {
		// Flush with zero commands: nothing to apply, nothing to report.
		return nil, nil
	}

	if err := svc.ApplyPack(ctx, packTail); err != nil {
		return nil, err
	}

	lines, err := svc.Report(ctx)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	for _, l := range lines {
		out.Write(l)
	}
	return out.Bytes(), nil
}
