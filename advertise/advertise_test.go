package advertise_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anndream/gitgud/advertise"
	"github.com/anndream/gitgud/agent/memory"
	"github.com/anndream/gitgud/protocol/object"
)

var oidBytes = strings.Repeat("a", 40)

func seedOneBranch(t *testing.T, store *memory.Store) string {
	t.Helper()
	data := []byte("tree " + oidBytes + "\n\ninitial\n")
	store.SeedObject(object.TypeCommit, parseOID(t, oidBytes), data)
	store.SeedRef("refs/heads/main", parseOID(t, oidBytes))
	store.SeedSymbolicHead("refs/heads/main")
	return oidBytes
}

func parseOID(t *testing.T, s string) (oid [20]byte) {
	t.Helper()
	copy(oid[:], []byte(s)[:20])
	return oid
}

func TestLinesWithHeadAndBranch(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	seedOneBranch(t, store)

	lines, err := advertise.Lines(context.Background(), store, advertise.UploadPack)
	require.NoError(t, err)
	require.NotEmpty(t, lines)

	body := joinLines(lines)
	require.Contains(t, body, "HEAD\x00")
	require.Contains(t, body, "refs/heads/main")
	require.Equal(t, "0000", string(lines[len(lines)-1]))
}

func TestLinesEmptyRepoAdvertisesPlaceholder(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()

	lines, err := advertise.Lines(context.Background(), store, advertise.UploadPack)
	require.NoError(t, err)

	body := joinLines(lines)
	require.Contains(t, body, "capabilities^{}")
	require.Contains(t, body, "0000000000000000000000000000000000000000")
}

func TestLinesReceivePackCapabilities(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()

	lines, err := advertise.Lines(context.Background(), store, advertise.ReceivePack)
	require.NoError(t, err)

	body := joinLines(lines)
	require.Contains(t, body, "report-status")
	require.Contains(t, body, "delete-refs")
}

func TestWriteHTTPIncludesServicePrelude(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	seedOneBranch(t, store)

	out, err := advertise.WriteHTTP(context.Background(), store, advertise.UploadPack)
	require.NoError(t, err)
	require.Contains(t, string(out), "# service=git-upload-pack")
}

func TestContentType(t *testing.T) {
	t.Parallel()

	require.Equal(t, "application/x-git-upload-pack-advertisement", advertise.UploadPack.ContentType())
	require.Equal(t, "application/x-git-receive-pack-advertisement", advertise.ReceivePack.ContentType())
}

func joinLines(lines [][]byte) string {
	var b strings.Builder
	for _, l := range lines {
		b.Write(l)
	}
	return b.String()
}
