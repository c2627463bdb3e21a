// Package repohost provides the concrete RepoResolver and CredentialChecker
// this module's server entrypoint wires into httpgit.Handler.
//
// Mirrors internal/storage/inmemory.go (a map guarded by one mutex, the
// same shape agent/memory.Store already generalizes) and auth.go (the
// basic/token authentication duality a real Git HTTP remote supports, per
// git-scm.com/docs/http-protocol#_authentication).
package repohost

import (
	"context"
	"sync"

	"github.com/anndream/gitgud/agent"
	"github.com/anndream/gitgud/agent/memory"
	"github.com/anndream/gitgud/httpgit"
)

// MemoryResolver is a RepoResolver backed entirely by in-memory
// agent/memory.Store instances, keyed by repository path. It auto-vivifies
// a fresh, empty repository the first time a path is requested — this
// module ships no on-disk object database, so "first push creates the
// repository" is this server's only notion of repository provisioning.
type MemoryResolver struct {
	mu    sync.Mutex
	repos map[string]*memory.Store
}

// NewMemoryResolver returns an empty resolver: no repositories exist until
// a request names one.
func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{repos: make(map[string]*memory.Store)}
}

// Resolve implements httpgit.RepoResolver.
func (r *MemoryResolver) Resolve(ctx context.Context, repoPath string) (agent.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.repos[repoPath]
	if !ok {
		store = memory.NewStore()
		r.repos[repoPath] = store
	}
	return store, nil
}

// Len reports how many repositories have been created so far.
func (r *MemoryResolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.repos)
}

var _ httpgit.RepoResolver = (*MemoryResolver)(nil)
