package memory_test

import (
	"crypto/sha1" //nolint:gosec // git object ids are SHA-1 by format
	"fmt"

	"github.com/anndream/gitgud/protocol"
	"github.com/anndream/gitgud/protocol/object"
)

// hashObject reproduces Git's object id derivation ("<type> <size>\x00<data>",
// SHA-1) so tests can build a small, internally consistent commit/tree/blob
// graph without a real on-disk repository.
func hashObject(typ object.Type, data []byte) protocol.OID {
	h := sha1.New() //nolint:gosec // git object ids are SHA-1 by format
	fmt.Fprintf(h, "%s %d\x00", typ.Bytes(), len(data))
	h.Write(data)
	var oid protocol.OID
	copy(oid[:], h.Sum(nil))
	return oid
}

// testRepo is a tiny, hand-built object graph: one blob, one tree
// containing it, and one commit pointing at that tree (with an optional
// parent), ready to seed into a Store.
type testRepo struct {
	blobOID, treeOID, commitOID     protocol.OID
	blobData, treeData, commitData []byte
}

func buildCommit(tree protocol.OID, parents []protocol.OID, message string) (protocol.OID, []byte) {
	body := fmt.Sprintf("tree %s\n", tree)
	for _, p := range parents {
		body += fmt.Sprintf("parent %s\n", p)
	}
	body += "author Test <test@example.com> 1700000000 +0000\n"
	body += "committer Test <test@example.com> 1700000000 +0000\n"
	body += "\n" + message + "\n"
	data := []byte(body)
	return hashObject(object.TypeCommit, data), data
}

type treeEntryArg struct {
	mode, name string
	oid        protocol.OID
}

func buildTree(entries ...treeEntryArg) (protocol.OID, []byte) {
	var data []byte
	for _, e := range entries {
		data = append(data, []byte(e.mode+" "+e.name)...)
		data = append(data, 0)
		data = append(data, e.oid[:]...)
	}
	return hashObject(object.TypeTree, data), data
}

// newTestRepo returns a single blob/tree/commit with no parent.
func newTestRepo(blobContent string) testRepo {
	blobData := []byte(blobContent)
	blobOID := hashObject(object.TypeBlob, blobData)

	treeOID, treeData := buildTree(treeEntryArg{"100644", "file.txt", blobOID})

	commitOID, commitData := buildCommit(treeOID, nil, "initial commit")

	return testRepo{
		blobOID: blobOID, blobData: blobData,
		treeOID: treeOID, treeData: treeData,
		commitOID: commitOID, commitData: commitData,
	}
}
