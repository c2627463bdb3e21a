package httpgit

import "context"

// Capability is one of the two permissions the HTTP adapter gates routes
// on: read for git-upload-pack, write for git-receive-pack.
type Capability string

const (
	CapabilityRead  Capability = "read"
	CapabilityWrite Capability = "write"
)

// Principal is the credential checker's verdict for one request: who (if
// anyone) authenticated, and which capabilities they hold against the
// target repository.
type Principal struct {
	Name  string
	Read  bool
	Write bool
}

// Has reports whether the principal holds the given capability.
func (p Principal) Has(c Capability) bool {
	switch c {
	case CapabilityRead:
		return p.Read
	case CapabilityWrite:
		return p.Write
	default:
		return false
	}
}

// CredentialChecker is the authorization collaborator the HTTP adapter
// calls on every request ("out of scope... only the boolean
// decision... specified"). login and password are empty for an
// unauthenticated request — a checker backing a public repository may
// still grant CapabilityRead to an empty principal.
//
//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o ../internal/fakes/credential_checker.go . CredentialChecker
type CredentialChecker interface {
	Check(ctx context.Context, repo, login, password string) (Principal, error)
}

// principalKey is the key for the Principal in the request context.
type principalKey struct{}

// principalToContext attaches a resolved Principal to ctx so downstream
// handlers can read it back without re-running the credential check.
func principalToContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the Principal resolved for this request, if
// any. Handlers downstream of the adapter (repository-agent implementations
// wanting to log who pushed, for instance) read it this way.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
