// Package advertise implements the reference advertisement (C2): the list
// of refs and capabilities a client sees before it negotiates a fetch or
// push, both as the body of a GET /info/refs request and as the opening
// lines of an upload-pack/receive-pack session.
//
// Mirrors smartinfo.go (the client-side counterpart that requests this
// exact response) and refs.go (the Ref model this package's output
// ultimately describes), generalized from "parse the advertisement a remote
// server sent" to "produce the advertisement this server sends".
package advertise

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/anndream/gitgud/agent"
	"github.com/anndream/gitgud/pktline"
	"github.com/anndream/gitgud/protocol"
)

// Service names the two advertisable services (the "svc").
type Service string

const (
	UploadPack  Service = "git-upload-pack"
	ReceivePack Service = "git-receive-pack"
)

// Capabilities returns the fixed capability set this service advertises —
// fixed per service, not negotiated per-ref.
func (s Service) Capabilities() protocol.CapabilitySet {
	if s == ReceivePack {
		return protocol.ReceivePackCapabilities()
	}
	return protocol.UploadPackCapabilities()
}

// ContentType is the advertisement response's Content-Type.
func (s Service) ContentType() string {
	return fmt.Sprintf("application/x-%s-advertisement", s)
}

// emptyRepoPlaceholder is the zero-OID placeholder advertised for a repository
// with no refs at all, so a client can still read the capability list off
// an otherwise-empty advertisement.
const emptyRepoPlaceholder = "capabilities^{}"

// Lines produces the ordered ref-advertisement body for svc: HEAD first (if
// resolvable), then branches, then tags, each rendered as "<oid> <name>",
// with the capability list attached as a NUL-separated suffix on the first
// line, terminated by a flush marker. It does not include the "# service="
// HTTP prelude — see WriteHTTP for that.
func Lines(ctx context.Context, a agent.Agent, svc Service) ([][]byte, error) {
	caps := svc.Capabilities().String()

	var refLines []string

	head, err := a.Head(ctx)
	switch {
	case err == nil:
		refLines = append(refLines, head.OID.String()+" HEAD")
	case errors.Is(err, agent.ErrNotFound):
		// HEAD unresolvable; advertisement starts from the first real ref
		// instead.
	default:
		return nil, fmt.Errorf("advertise: head: %w", err)
	}

	branches, err := a.Branches(ctx)
	if err != nil {
		return nil, fmt.Errorf("advertise: branches: %w", err)
	}
	for _, ref := range branches {
		refLines = append(refLines, ref.OID.String()+" "+ref.FullName())
	}

	tags, err := a.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("advertise: tags: %w", err)
	}
	for _, ref := range tags {
		refLines = append(refLines, ref.OID.String()+" "+ref.FullName())
	}

	if len(refLines) == 0 {
		refLines = []string{protocol.Zero.String() + " " + emptyRepoPlaceholder}
	}

	refLines[0] = refLines[0] + "\x00" + caps

	lines := make([][]byte, 0, len(refLines)+1)
	for _, l := range refLines {
		encoded, err := pktline.EncodeLine(l)
		if err != nil {
			return nil, fmt.Errorf("advertise: encode ref line: %w", err)
		}
		lines = append(lines, encoded)
	}
	lines = append(lines, pktline.Flush)

	return lines, nil
}

// WriteHTTP renders the full /info/refs response body for svc: the
// "# service=<name>" line wrapped in its own pkt-line and terminated by a
// flush, followed by Lines' ref advertisement. Callers must set
// the response Content-Type to svc.ContentType() themselves.
func WriteHTTP(ctx context.Context, a agent.Agent, svc Service) ([]byte, error) {
	service, err := pktline.EncodeLine(fmt.Sprintf("# service=%s", svc))
	if err != nil {
		return nil, fmt.Errorf("advertise: encode service line: %w", err)
	}

	lines, err := Lines(ctx, a, svc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(service)
	buf.Write(pktline.Flush)
	for _, l := range lines {
		buf.Write(l)
	}
	return buf.Bytes(), nil
}
