package uploadpack

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/anndream/gitgud/agent"
	"github.com/anndream/gitgud/log"
	"github.com/anndream/gitgud/pktline"
	"github.com/anndream/gitgud/protocol"
)

// Run drives a complete UploadPack negotiation over a single buffered
// request body, the shape every POST /git-upload-pack request takes under
// this server's HTTP adapter. It returns the raw response
// body: ACK/NAK lines followed by the packfile, with no further framing
// around the pack bytes.
//
// A want naming an object the agent doesn't have is reported as an "ERR"
// pkt-line rather than a Go error — NotOurRef is a protocol-level outcome
// carried inside the 200 response body.
func Run(ctx context.Context, a agent.Agent, body []byte) ([]byte, error) {
	logger := log.FromContext(ctx)

	tokens, _, err := pktline.DecodeAll(body)
	if err != nil {
		return nil, fmt.Errorf("uploadpack: decoding request: %w", err)
	}

	svc := NewForPost(a)

	wantsTokens, havesTokens := splitAtFirstFlush(tokens)

	if err := svc.ConsumeWants(ctx, wantsTokens); err != nil {
		if line, ok := notOurRefLine(err); ok {
			if logger != nil {
				logger.Warn("upload-pack: want not found", "error", err)
			}
			return line, nil
		}
		return nil, err
	}

	if svc.State() == StateDone {
		// Empty want-set: the client disconnected during negotiation, a
		// legal outcome. Nothing to emit.
		return nil, nil
	}

	acks, err := svc.ConsumeHaves(ctx, havesTokens)
	if err != nil {
		return nil, err
	}

	pack, err := svc.BuildPackfile(ctx)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	for _, l := range acks {
		out.Write(l)
	}
	out.Write(pack)
	return out.Bytes(), nil
}

// splitAtFirstFlush splits tokens at the first flush marker: everything up
// to and including it is the wants phase, everything after is the haves
// phase.
func splitAtFirstFlush(tokens []pktline.Token) (wants, haves []pktline.Token) {
	for i, tok := range tokens {
		if tok.Kind == pktline.KindFlush {
			return tokens[:i+1], tokens[i+1:]
		}
	}
	return tokens, nil
}

// notOurRefLine renders a NotOurRefError as an "ERR <msg>" pkt-line.
func notOurRefLine(err error) ([]byte, bool) {
	var notOurRef *protocol.NotOurRefError
	if !errors.As(err, &notOurRef) {
		return nil, false
	}
	line, encErr := pktline.EncodeLine("ERR " + err.Error())
	if encErr != nil {
		return nil, false
	}
	return line, true
}
