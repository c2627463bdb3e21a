package repohost

import (
	"context"
	"crypto/subtle"

	"github.com/anndream/gitgud/httpgit"
)

// StaticChecker is a CredentialChecker backed by one fixed write credential,
// the server-operator equivalent of the WithBasicAuth/WithTokenAuth client
// options this package's wire format mirrors: a push must present either
// the configured username and password as HTTP Basic auth, or the
// configured token as the password with any (or empty) username — the way
// forge tokens (GITHUB_TOKEN and friends) are conventionally presented over
// Basic auth, just checked here instead of sent.
//
// Reads are never gated: every request gets CapabilityRead, matching this
// server's default posture as a trusted-network fetch mirror. An empty
// Token and empty Password/Username combination denies every write,
// the safe default for a StaticChecker constructed without operator
// configuration.
type StaticChecker struct {
	Username string
	Password string
	Token    string
}

// Check implements httpgit.CredentialChecker.
func (c *StaticChecker) Check(ctx context.Context, repo, login, password string) (httpgit.Principal, error) {
	principal := httpgit.Principal{Name: login, Read: true}

	switch {
	case c.Token != "" && constantTimeEqual(password, c.Token):
		principal.Write = true
	case c.Username != "" && c.Password != "" &&
		constantTimeEqual(login, c.Username) && constantTimeEqual(password, c.Password):
		principal.Write = true
	}

	return principal, nil
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

var _ httpgit.CredentialChecker = (*StaticChecker)(nil)
