package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/bookdoc"
	"github.com/libroready/libroready/internal/config"
	"github.com/libroready/libroready/internal/docio"
	"github.com/libroready/libroready/internal/session"
)

func newTestServer(t *testing.T) (*Server, *session.Store) {
	t.Helper()
	cfg := config.Load()
	cfg.UploadDir = t.TempDir()
	cfg.OutputDir = t.TempDir()
	store := session.NewStore(time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(store, log, cfg), store
}

func postJSON(t *testing.T, srv *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestUploadRejectsNonDocx(t *testing.T) {
	srv, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("plain text"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unsupported file type") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestUploadRequiresFile(t *testing.T) {
	srv, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("other", "value")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProcessUnknownSession(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := postJSON(t, srv, "/api/process", processRequest{SessionID: "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown session") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestProcessInvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDownloadUnknownSession(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/download/nope/epub", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDownloadMissingFileType(t *testing.T) {
	srv, store := newTestServer(t)
	sess := store.Create("book.docx", "")

	req := httptest.NewRequest(http.MethodGet, "/api/download/"+sess.ID+"/epub", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDescriptionRequiresText(t *testing.T) {
	srv, store := newTestServer(t)
	sess := store.Create("book.docx", "")

	rec := postJSON(t, srv, "/api/premium/description", premiumRequest{SessionID: sess.ID})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDescriptionWithExplicitGenre(t *testing.T) {
	srv, store := newTestServer(t)
	sess := store.Create("book.docx", "")

	rec := postJSON(t, srv, "/api/premium/description", premiumRequest{
		SessionID:   sess.ID,
		Description: "A sweeping tale of the sea.",
		Genre:       "thriller",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		HTML string `json:"html"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(result.HTML, "<b>") {
		t.Errorf("expected bolded hook, got %q", result.HTML)
	}
}

func TestCoverGenerateAndFetch(t *testing.T) {
	srv, store := newTestServer(t)
	sess := store.Create("the_long_night.docx", "")

	rec := postJSON(t, srv, "/api/premium/cover", premiumRequest{
		SessionID: sess.ID,
		Author:    "J. Writer",
		Genre:     "fantasy",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if sess.Output("cover") == "" {
		t.Fatal("expected cover output recorded on session")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/premium/cover/"+sess.ID, nil)
	fetch := httptest.NewRecorder()
	srv.ServeHTTP(fetch, req)
	if fetch.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching cover, got %d", fetch.Code)
	}
	if !bytes.HasPrefix(fetch.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("expected PNG payload")
	}
}

func TestPremiumUnknownSession(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{
		"/api/premium/keywords",
		"/api/premium/categories",
		"/api/premium/description",
		"/api/premium/cover",
	} {
		rec := postJSON(t, srv, path, premiumRequest{SessionID: "nope", Description: "x"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, rec.Code)
		}
	}
}

func analyzedSession(t *testing.T, store *session.Store) *session.Session {
	t.Helper()
	doc := &bookdoc.Document{
		Title: "book",
		Paragraphs: []bookdoc.Paragraph{
			{Runs: []bookdoc.Run{{Text: "Chapter 1"}}},
			{Runs: []bookdoc.Run{{Text: "\tA body paragraph."}}},
		},
	}
	chapters := analyze.DetectChapters(doc)
	sess := store.Create("book.docx", "")
	sess.SetAnalysis(doc, chapters, analyze.DetectIssues(doc, chapters, analyze.DefaultThresholds()))
	return sess
}

func TestProcessGeneratesArtifacts(t *testing.T) {
	srv, store := newTestServer(t)
	sess := analyzedSession(t, store)

	rec := postJSON(t, srv, "/api/process", processRequest{
		SessionID: sess.ID,
		Chapters:  []int{0},
		Fixes:     []string{analyze.IssueTabs},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Files map[string]string `json:"files"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, ft := range []string{"docx", "epub", "pdf"} {
		if resp.Files[ft] == "" {
			t.Errorf("missing %s download url", ft)
		}
		if sess.Output(ft) == "" {
			t.Errorf("missing %s output path", ft)
		}
	}

	// Selecting chapter indices promotes them even without an explicit
	// heading fix in the request.
	got, err := docio.ReadFile(sess.Output("docx"))
	if err != nil {
		t.Fatalf("read formatted docx: %v", err)
	}
	if got.Paragraphs[0].Style != bookdoc.StyleHeading1 {
		t.Errorf("expected promoted chapter, got style %q", got.Paragraphs[0].Style)
	}
}

func TestProcessConcurrentRequests(t *testing.T) {
	srv, store := newTestServer(t)
	sess := analyzedSession(t, store)

	var wg sync.WaitGroup
	codes := make([]int, 4)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := postJSON(t, srv, "/api/process", processRequest{
				SessionID: sess.ID,
				Chapters:  []int{0},
			})
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusOK {
			t.Errorf("request %d: expected 200, got %d", i, code)
		}
	}
	// Every artifact must be intact after the overlapping requests.
	if _, err := docio.ReadFile(sess.Output("docx")); err != nil {
		t.Errorf("formatted docx unreadable: %v", err)
	}
	if _, err := os.Stat(sess.Output("epub")); err != nil {
		t.Errorf("epub missing: %v", err)
	}
	if _, err := os.Stat(sess.Output("pdf")); err != nil {
		t.Errorf("pdf missing: %v", err)
	}
}
