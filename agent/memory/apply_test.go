package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anndream/gitgud/agent/memory"
	"github.com/anndream/gitgud/pack"
	"github.com/anndream/gitgud/protocol"
	"github.com/anndream/gitgud/protocol/object"
)

func TestApplyUpdatesCreateRef(t *testing.T) {
	t.Parallel()

	repo := newTestRepo("hello\n")
	packData, _, err := pack.BuildThin([]pack.Entry{
		{Type: object.TypeBlob, OID: repo.blobOID, Data: repo.blobData},
		{Type: object.TypeTree, OID: repo.treeOID, Data: repo.treeData},
		{Type: object.TypeCommit, OID: repo.commitOID, Data: repo.commitData},
	})
	require.NoError(t, err)

	store := memory.NewStore()
	report, err := store.ApplyUpdates(context.Background(), []protocol.Command{
		{Old: protocol.Zero, New: repo.commitOID, RefName: "refs/heads/main"},
	}, packData)
	require.NoError(t, err)
	require.Nil(t, report.UnpackErr)
	require.Len(t, report.Results, 1)
	require.True(t, report.Results[0].Ok())

	branches, err := store.Branches(context.Background())
	require.NoError(t, err)
	require.Len(t, branches, 1)
	require.Equal(t, repo.commitOID, branches[0].OID)
}

func TestApplyUpdatesRejectsStaleOld(t *testing.T) {
	t.Parallel()

	repo := newTestRepo("hello\n")
	store := memory.NewStore()
	store.SeedObject(object.TypeBlob, repo.blobOID, repo.blobData)
	store.SeedObject(object.TypeTree, repo.treeOID, repo.treeData)
	store.SeedObject(object.TypeCommit, repo.commitOID, repo.commitData)
	store.SeedRef("refs/heads/main", repo.commitOID)

	wrongOld := protocol.MustParseOID("1111111111111111111111111111111111111111")
	report, err := store.ApplyUpdates(context.Background(), []protocol.Command{
		{Old: wrongOld, New: repo.commitOID, RefName: "refs/heads/main"},
	}, nil)
	require.NoError(t, err)
	require.False(t, report.Results[0].Ok())
	require.Contains(t, report.Results[0].Reason, "mismatch")
}

func TestApplyUpdatesDeleteRef(t *testing.T) {
	t.Parallel()

	repo := newTestRepo("hello\n")
	store := memory.NewStore()
	store.SeedObject(object.TypeBlob, repo.blobOID, repo.blobData)
	store.SeedObject(object.TypeTree, repo.treeOID, repo.treeData)
	store.SeedObject(object.TypeCommit, repo.commitOID, repo.commitData)
	store.SeedRef("refs/heads/doomed", repo.commitOID)

	report, err := store.ApplyUpdates(context.Background(), []protocol.Command{
		{Old: repo.commitOID, New: protocol.Zero, RefName: "refs/heads/doomed"},
	}, nil)
	require.NoError(t, err)
	require.True(t, report.Results[0].Ok())

	branches, err := store.Branches(context.Background())
	require.NoError(t, err)
	require.Empty(t, branches)
}

func TestApplyUpdatesNoopIsAcceptedWithoutMutation(t *testing.T) {
	t.Parallel()

	repo := newTestRepo("hello\n")
	store := memory.NewStore()
	store.SeedObject(object.TypeBlob, repo.blobOID, repo.blobData)
	store.SeedObject(object.TypeTree, repo.treeOID, repo.treeData)
	store.SeedObject(object.TypeCommit, repo.commitOID, repo.commitData)
	store.SeedRef("refs/heads/main", repo.commitOID)

	report, err := store.ApplyUpdates(context.Background(), []protocol.Command{
		{Old: repo.commitOID, New: repo.commitOID, RefName: "refs/heads/main"},
	}, nil)
	require.NoError(t, err)
	require.True(t, report.Results[0].Ok())
}

func TestApplyUpdatesUnpackFailureTouchesNoRefs(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	report, err := store.ApplyUpdates(context.Background(), []protocol.Command{
		{Old: protocol.Zero, New: protocol.MustParseOID("1111111111111111111111111111111111111111"), RefName: "refs/heads/main"},
	}, []byte("not a pack"))
	require.NoError(t, err)
	require.Error(t, report.UnpackErr)
	require.Empty(t, report.Results)

	branches, err := store.Branches(context.Background())
	require.NoError(t, err)
	require.Empty(t, branches)
}

func TestApplyUpdatesResolvesRefDeltaAgainstExistingObject(t *testing.T) {
	t.Parallel()

	base := newTestRepo("v1\n")
	store := memory.NewStore()
	seedRepo(store, base)
	store.SeedRef("refs/heads/main", base.commitOID)

	// A second commit whose tree is byte-identical to the first (reuse is
	// fine for this test: only ref-delta resolution against an object the
	// store already has is under test).
	secondOID, secondData := buildCommit(base.treeOID, []protocol.OID{base.commitOID}, "second commit")

	thinPack, err := buildRefDeltaPack(t, base.commitOID, base.commitData, secondData)
	require.NoError(t, err)

	report, err := store.ApplyUpdates(context.Background(), []protocol.Command{
		{Old: base.commitOID, New: secondOID, RefName: "refs/heads/main"},
	}, thinPack)
	require.NoError(t, err)
	require.Nil(t, report.UnpackErr)
	require.True(t, report.Results[0].Ok())

	ok, err := store.ObjectExists(context.Background(), secondOID)
	require.NoError(t, err)
	require.True(t, ok)
}
