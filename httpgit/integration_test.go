package httpgit_test

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // git object ids are SHA-1 by format
	"fmt"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/anndream/gitgud/agent/memory"
	"github.com/anndream/gitgud/httpgit"
	"github.com/anndream/gitgud/internal/fakes"
	"github.com/anndream/gitgud/internal/testhelpers"
	"github.com/anndream/gitgud/log"
	"github.com/anndream/gitgud/pktline"
	"github.com/anndream/gitgud/protocol"
	"github.com/anndream/gitgud/protocol/object"
)

// gitHash derives an object's id the way Git does: SHA-1 over
// "<type> <size>\x00<content>".
func gitHash(typ object.Type, data []byte) protocol.OID {
	h := sha1.New() //nolint:gosec // git object ids are SHA-1 by format
	fmt.Fprintf(h, "%s %d\x00", typ.Bytes(), len(data))
	h.Write(data)
	var oid protocol.OID
	copy(oid[:], h.Sum(nil))
	return oid
}

var _ = Describe("Smart HTTP transport", func() {
	var (
		store   *memory.Store
		server  *httptest.Server
		baseOID protocol.OID
		tipOID  protocol.OID
	)

	logged := func(h http.Handler) http.Handler {
		logger := testhelpers.NewTestLogger()
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, r.WithContext(log.ToContext(r.Context(), logger)))
		})
	}

	BeforeEach(func() {
		store = memory.NewStore()

		// A two-commit history: base <- tip, both sharing one tree.
		blobData := []byte("hello\n")
		blobOID := gitHash(object.TypeBlob, blobData)

		treeData := append([]byte("100644 file.txt\x00"), blobOID[:]...)
		treeOID := gitHash(object.TypeTree, treeData)

		baseData := []byte("tree " + treeOID.String() + "\n\nbase\n")
		baseOID = gitHash(object.TypeCommit, baseData)

		tipData := []byte("tree " + treeOID.String() + "\nparent " + baseOID.String() + "\n\ntip\n")
		tipOID = gitHash(object.TypeCommit, tipData)

		store.SeedObject(object.TypeBlob, blobOID, blobData)
		store.SeedObject(object.TypeTree, treeOID, treeData)
		store.SeedObject(object.TypeCommit, baseOID, baseData)
		store.SeedObject(object.TypeCommit, tipOID, tipData)
		store.SeedRef("refs/heads/main", tipOID)
		store.SeedSymbolicHead("refs/heads/main")

		checker := new(fakes.FakeCredentialChecker)
		checker.CheckReturns(httpgit.Principal{Read: true, Write: true}, nil)
		resolver := new(fakes.FakeRepoResolver)
		resolver.ResolveReturns(store, nil)

		handler := httpgit.NewHandler(resolver, checker, "gitgud-test")
		server = httptest.NewServer(logged(handler))
	})

	AfterEach(func() {
		server.Close()
	})

	It("advertises the repository's refs and capabilities over GET /info/refs", func() {
		resp, err := http.Get(server.URL + "/demo/info/refs?service=git-upload-pack")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("Content-Type")).To(Equal("application/x-git-upload-pack-advertisement"))

		body := new(bytes.Buffer)
		_, err = body.ReadFrom(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(body.String()).To(ContainSubstring("refs/heads/main"))
		Expect(body.String()).To(ContainSubstring("multi_ack_detailed"))
	})

	It("reports the resolved branch on GET /HEAD", func() {
		resp, err := http.Get(server.URL + "/demo/HEAD")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		body := new(bytes.Buffer)
		_, err = body.ReadFrom(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(body.String()).To(Equal("ref: refs/heads/main\n"))
	})

	It("serves a full upload-pack negotiation ending in a packfile", func() {
		var req bytes.Buffer
		wantLine, err := pktline.EncodeLine("want " + tipOID.String() + " multi_ack_detailed")
		Expect(err).NotTo(HaveOccurred())
		haveLine, err := pktline.EncodeLine("have " + baseOID.String())
		Expect(err).NotTo(HaveOccurred())
		doneLine, err := pktline.EncodeLine("done")
		Expect(err).NotTo(HaveOccurred())

		req.Write(wantLine)
		req.Write(pktline.Flush)
		req.Write(haveLine)
		req.Write(doneLine)

		resp, err := http.Post(server.URL+"/demo/git-upload-pack", "application/x-git-upload-pack-request", &req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("Content-Type")).To(Equal("application/x-git-upload-pack-result"))

		body := new(bytes.Buffer)
		_, err = body.ReadFrom(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(body.String()).To(ContainSubstring("ACK " + baseOID.String() + " common"))
		Expect(body.String()).To(ContainSubstring("ACK " + baseOID.String() + " ready"))
		Expect(body.String()).To(ContainSubstring("PACK"))
	})

	It("applies a delete-only receive-pack push and reports status", func() {
		store.SeedRef("refs/tags/v1", tipOID)

		var req bytes.Buffer
		cmdLine, err := pktline.EncodeLine(tipOID.String() + " " + protocol.Zero.String() + " refs/tags/v1\x00report-status")
		Expect(err).NotTo(HaveOccurred())
		req.Write(cmdLine)
		req.Write(pktline.Flush)

		resp, err := http.Post(server.URL+"/demo/git-receive-pack", "application/x-git-receive-pack-request", &req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("Content-Type")).To(Equal("application/x-git-receive-pack-result"))

		body := new(bytes.Buffer)
		_, err = body.ReadFrom(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(body.String()).To(ContainSubstring("unpack ok"))
		Expect(body.String()).To(ContainSubstring("ok refs/tags/v1"))
	})

	It("rejects an unauthenticated write with 401 and a WWW-Authenticate challenge", func() {
		checker := new(fakes.FakeCredentialChecker)
		checker.CheckReturns(httpgit.Principal{Read: true}, nil)
		resolver := new(fakes.FakeRepoResolver)
		resolver.ResolveReturns(store, nil)
		readOnly := httptest.NewServer(logged(httpgit.NewHandler(resolver, checker, "gitgud-test")))
		defer readOnly.Close()

		resp, err := http.Post(readOnly.URL+"/demo/git-receive-pack", "application/x-git-receive-pack-request", bytes.NewReader(pktline.Flush))
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		Expect(resp.Header.Get("WWW-Authenticate")).To(ContainSubstring("gitgud-test"))
	})
})
