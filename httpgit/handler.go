// Package httpgit implements the HTTP adapter (C5): routes Smart HTTP
// requests to the advertisement, upload-pack, and receive-pack state
// machines, and owns everything "at the edge" those packages don't —
// Basic auth, gzip bodies, content types, status codes.
//
// Mirrors client.go/rawclient.go (the client-side counterpart of this
// exact wire surface) and auth.go (Basic/token auth option handling),
// generalized from "send these requests" to "serve them".
package httpgit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/anndream/gitgud/advertise"
	"github.com/anndream/gitgud/agent"
	"github.com/anndream/gitgud/log"
	"github.com/anndream/gitgud/receivepack"
	"github.com/anndream/gitgud/retry"
	"github.com/anndream/gitgud/uploadpack"
)

// Handler is the Smart HTTP adapter's http.Handler. Routes are scoped
// under "/<repo-path>/..."; repoPath is whatever RepoResolver
// expects (a "<user>/<repo>" slug, a filesystem path, a database key — the
// adapter doesn't interpret it, so it may span any number of path segments).
type Handler struct {
	Repos   RepoResolver
	Checker CredentialChecker
	Realm   string // WWW-Authenticate realm
}

// NewHandler builds a ready-to-serve Handler.
func NewHandler(repos RepoResolver, checker CredentialChecker, realm string) *Handler {
	return &Handler{Repos: repos, Checker: checker, Realm: realm}
}

// The four route suffixes of the Smart HTTP surface. Everything before the
// suffix is the repository path, which stdlib mux patterns can't express (a
// multi-segment wildcard is only valid in trailing position), so routing is
// a suffix match instead.
const (
	routeInfoRefs    = "/info/refs"
	routeHead        = "/HEAD"
	routeUploadPack  = "/git-upload-pack"
	routeReceivePack = "/git-receive-pack"
)

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	var suffix string
	for _, s := range []string{routeInfoRefs, routeHead, routeUploadPack, routeReceivePack} {
		if strings.HasSuffix(path, s) {
			suffix = s
			break
		}
	}
	repoPath := strings.Trim(strings.TrimSuffix(path, suffix), "/")
	if suffix == "" || repoPath == "" {
		http.NotFound(w, r)
		return
	}

	wantMethod := http.MethodGet
	if suffix == routeUploadPack || suffix == routeReceivePack {
		wantMethod = http.MethodPost
	}
	if r.Method != wantMethod {
		w.Header().Set("Allow", wantMethod)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch suffix {
	case routeInfoRefs:
		h.handleInfoRefs(w, r, repoPath)
	case routeHead:
		h.handleHead(w, r, repoPath)
	case routeUploadPack:
		h.handleService(w, r, repoPath, advertise.UploadPack)
	case routeReceivePack:
		h.handleService(w, r, repoPath, advertise.ReceivePack)
	}
}

func capabilityFor(svc advertise.Service) Capability {
	if svc == advertise.ReceivePack {
		return CapabilityWrite
	}
	return CapabilityRead
}

// authorize runs the Basic-auth/credential-checker gate shared by every
// route. On success it returns a context carrying the
// resolved Principal; on failure it has already written the response and
// returns ok=false.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, repoPath string, required Capability) (context.Context, bool) {
	login, password, _ := r.BasicAuth()

	principal, err := retry.Do(r.Context(), func() (Principal, error) {
		return h.Checker.Check(r.Context(), repoPath, login, password)
	})
	if err != nil {
		if logger := log.FromContext(r.Context()); logger != nil {
			logger.Error("httpgit: credential check failed", "repo", repoPath, "error", err)
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}

	if !principal.Has(required) {
		w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", h.Realm))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	return principalToContext(r.Context(), principal), true
}

// resolveRepo looks up the target repository's agent, writing a 404 on the
// adapter's behalf if it doesn't exist (RepoNotFound).
func (h *Handler) resolveRepo(ctx context.Context, w http.ResponseWriter, repoPath string) (agent.Agent, bool) {
	a, err := h.Repos.Resolve(ctx, repoPath)
	if err != nil {
		if errors.Is(err, ErrRepoNotFound) {
			http.Error(w, "repository not found", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return a, true
}

func (h *Handler) handleInfoRefs(w http.ResponseWriter, r *http.Request, repoPath string) {
	svc := advertise.Service(r.URL.Query().Get("service"))
	if svc != advertise.UploadPack && svc != advertise.ReceivePack {
		http.Error(w, "unknown service", http.StatusBadRequest)
		return
	}

	ctx, ok := h.authorize(w, r, repoPath, capabilityFor(svc))
	if !ok {
		return
	}

	a, ok := h.resolveRepo(ctx, w, repoPath)
	if !ok {
		return
	}

	body, err := advertise.WriteHTTP(ctx, a, svc)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", svc.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) handleHead(w http.ResponseWriter, r *http.Request, repoPath string) {
	ctx, ok := h.authorize(w, r, repoPath, CapabilityRead)
	if !ok {
		return
	}

	a, ok := h.resolveRepo(ctx, w, repoPath)
	if !ok {
		return
	}

	head, err := a.Head(ctx)
	if errors.Is(err, agent.ErrNotFound) {
		http.Error(w, "HEAD unresolvable", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	target := head.OID.String()
	if branches, err := a.Branches(ctx); err == nil {
		for _, b := range branches {
			if b.OID == head.OID {
				target = b.FullName()
				break
			}
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "ref: %s\n", target)
}

// handleService drives the POST /git-upload-pack or /git-receive-pack
// exchange for svc.
func (h *Handler) handleService(w http.ResponseWriter, r *http.Request, repoPath string, svc advertise.Service) {
	ctx, ok := h.authorize(w, r, repoPath, capabilityFor(svc))
	if !ok {
		return
	}

	a, ok := h.resolveRepo(ctx, w, repoPath)
	if !ok {
		return
	}

	body, err := readRequestBody(r)
	if err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	var out []byte
	if svc == advertise.ReceivePack {
		out, err = receivepack.Run(ctx, a, body)
	} else {
		out, err = uploadpack.Run(ctx, a, body)
	}
	if err != nil {
		if logger := log.FromContext(ctx); logger != nil {
			logger.Error("httpgit: service run failed", "service", svc, "error", err)
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resultContentType := strings.Replace(svc.ContentType(), "-advertisement", "-result", 1)
	w.Header().Set("Content-Type", resultContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// readRequestBody fully buffers r's body, inflating it first if
// Content-Encoding: gzip ("MUST fully buffer the body").
func readRequestBody(r *http.Request) ([]byte, error) {
	defer func() { _ = r.Body.Close() }()

	var reader io.Reader = r.Body
	if strings.EqualFold(r.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			return nil, fmt.Errorf("httpgit: inflating gzip body: %w", err)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	return io.ReadAll(reader)
}
