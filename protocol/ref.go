package protocol

import (
	"errors"
	"fmt"
	"strings"
)

// Ref is a single reference as advertised on the wire: a prefix ("" for
// HEAD, "refs/heads/", or "refs/tags/"), a short name, and the object it
// points at.
type Ref struct {
	Prefix string
	Name   string
	OID    OID
}

const (
	// HeadsPrefix is the prefix for branch references.
	HeadsPrefix = "refs/heads/"
	// TagsPrefix is the prefix for tag references.
	TagsPrefix = "refs/tags/"
)

// FullName returns the full wire form of the reference name, "prefix||name".
func (r Ref) FullName() string {
	if r.Prefix == "" {
		return r.Name
	}
	return r.Prefix + r.Name
}

// ErrInvalidRefName is returned by ParseFullRefName for names that don't
// satisfy git-check-ref-format's rules.
var ErrInvalidRefName = errors.New("invalid reference name")

// ParseFullRefName splits a full wire ref name ("refs/heads/main", "HEAD")
// into its prefix and short name, validating it against the subset of
// git-check-ref-format's rules relevant to the names this server accepts:
// no empty components, no leading dot, no ".lock" suffix, no control
// characters or the handful of punctuation characters Git reserves.
//
// Adapted from the client-side ref-name validator in protocol/refname.go,
// simplified to the prefix/name tuple this package's data model uses
// instead of a three-field RefName.
func ParseFullRefName(full string) (prefix, name string, err error) {
	if full == "HEAD" {
		return "", "HEAD", nil
	}

	var category string
	switch {
	case strings.HasPrefix(full, HeadsPrefix):
		category, name = HeadsPrefix, full[len(HeadsPrefix):]
	case strings.HasPrefix(full, TagsPrefix):
		category, name = TagsPrefix, full[len(TagsPrefix):]
	default:
		return "", "", fmt.Errorf("%w: %q does not start with refs/heads/ or refs/tags/", ErrInvalidRefName, full)
	}

	if name == "" {
		return "", "", fmt.Errorf("%w: %q has an empty short name", ErrInvalidRefName, full)
	}
	if strings.Contains(name, "..") {
		return "", "", fmt.Errorf("%w: %q contains '..'", ErrInvalidRefName, full)
	}
	if strings.Contains(name, "@{") {
		return "", "", fmt.Errorf("%w: %q contains '@{'", ErrInvalidRefName, full)
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, ".lock") {
		return "", "", fmt.Errorf("%w: %q ends with '.' or '.lock'", ErrInvalidRefName, full)
	}

	for _, component := range strings.Split(name, "/") {
		if component == "" {
			return "", "", fmt.Errorf("%w: %q has an empty path component", ErrInvalidRefName, full)
		}
		if strings.HasPrefix(component, ".") {
			return "", "", fmt.Errorf("%w: %q has a component starting with '.'", ErrInvalidRefName, full)
		}
		if strings.ContainsFunc(component, func(r rune) bool {
			return r < 0o040 || r == 0o177 || r == ' ' || r == '~' || r == '^' || r == ':' || r == '?' || r == '*' || r == '[' || r == '\\'
		}) {
			return "", "", fmt.Errorf("%w: %q contains a reserved character", ErrInvalidRefName, full)
		}
	}

	return category, name, nil
}
