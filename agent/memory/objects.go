package memory

import (
	"bytes"
	"fmt"

	"github.com/anndream/gitgud/protocol"
)

// treeEntry is one record of a decoded tree object: a mode string ("100644",
// "40000", ...), a path component, and the object it points at. Mode and
// name are kept as-is; nothing here needs to interpret file permissions.
type treeEntry struct {
	mode string
	name string
	oid  protocol.OID
}

// parseCommit extracts the tree and parent object ids from a commit
// object's inflated content. Git's commit format is a sequence of
// "<key> <value>" header lines terminated by a blank line and the commit
// message (see protocol/object's package doc comment for the object model
// this mirrors); Revwalk only ever needs the "tree" and "parent" lines, so
// this does not attempt to parse author/committer identities or the
// message body.
func parseCommit(data []byte) (tree protocol.OID, parents []protocol.OID, err error) {
	headerEnd := bytes.Index(data, []byte("\n\n"))
	if headerEnd < 0 {
		headerEnd = len(data)
	}

	for _, line := range bytes.Split(data[:headerEnd], []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		fields := bytes.SplitN(line, []byte(" "), 2)
		if len(fields) != 2 {
			continue
		}
		key, value := string(fields[0]), string(fields[1])
		switch key {
		case "tree":
			tree, err = protocol.ParseOID(value)
			if err != nil {
				return protocol.OID{}, nil, fmt.Errorf("commit: bad tree line %q: %w", value, err)
			}
		case "parent":
			oid, err := protocol.ParseOID(value)
			if err != nil {
				return protocol.OID{}, nil, fmt.Errorf("commit: bad parent line %q: %w", value, err)
			}
			parents = append(parents, oid)
		}
	}

	if tree.IsZero() {
		return protocol.OID{}, nil, fmt.Errorf("commit: missing tree line")
	}
	return tree, parents, nil
}

// parseTree decodes a tree object's inflated content into its entries. Each
// entry is "<mode> <name>\x00<20-byte binary oid>", back to back with no
// separator between entries.
func parseTree(data []byte) ([]treeEntry, error) {
	var entries []treeEntry
	for len(data) > 0 {
		sp := bytes.IndexByte(data, ' ')
		if sp < 0 {
			return nil, fmt.Errorf("tree: truncated entry (no mode separator)")
		}
		mode := string(data[:sp])
		data = data[sp+1:]

		nul := bytes.IndexByte(data, 0)
		if nul < 0 {
			return nil, fmt.Errorf("tree: truncated entry (no name terminator)")
		}
		name := string(data[:nul])
		data = data[nul+1:]

		if len(data) < protocol.OIDSize {
			return nil, fmt.Errorf("tree: truncated entry (short oid)")
		}
		var oid protocol.OID
		copy(oid[:], data[:protocol.OIDSize])
		data = data[protocol.OIDSize:]

		entries = append(entries, treeEntry{mode: mode, name: name, oid: oid})
	}
	return entries, nil
}

// parseTagTarget extracts the "object" header line from an annotated tag
// object's inflated content — the only field Revwalk needs to follow a tag
// down to the commit (or other object) it points at.
func parseTagTarget(data []byte) (protocol.OID, error) {
	headerEnd := bytes.Index(data, []byte("\n\n"))
	if headerEnd < 0 {
		headerEnd = len(data)
	}

	for _, line := range bytes.Split(data[:headerEnd], []byte("\n")) {
		fields := bytes.SplitN(line, []byte(" "), 2)
		if len(fields) == 2 && string(fields[0]) == "object" {
			oid, err := protocol.ParseOID(string(fields[1]))
			if err != nil {
				return protocol.OID{}, fmt.Errorf("tag: bad object line %q: %w", fields[1], err)
			}
			return oid, nil
		}
	}
	return protocol.OID{}, fmt.Errorf("tag: missing object line")
}
