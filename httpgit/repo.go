package httpgit

import (
	"context"
	"errors"

	"github.com/anndream/gitgud/agent"
)

// ErrRepoNotFound is returned by RepoResolver when the named repository
// does not exist ("RepoNotFound — 404 at the HTTP
// boundary").
var ErrRepoNotFound = errors.New("repository not found")

// RepoResolver opens the repository-agent handle for one request's target
// repository ("each request opens its own [agent handle]"). The
// returned agent.Agent must not be shared across concurrent requests.
//
//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o ../internal/fakes/repo_resolver.go . RepoResolver
type RepoResolver interface {
	Resolve(ctx context.Context, repoPath string) (agent.Agent, error)
}
