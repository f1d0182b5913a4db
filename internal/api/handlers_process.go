package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/bookdoc"
	"github.com/libroready/libroready/internal/docio"
	"github.com/libroready/libroready/internal/export"
	"github.com/libroready/libroready/internal/fix"
)

type processRequest struct {
	SessionID string   `json:"session_id"`
	Chapters  []int    `json:"chapters"`
	Fixes     []string `json:"fixes"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess := s.sessions.Get(req.SessionID)
	if sess == nil {
		jsonError(w, "unknown session", http.StatusBadRequest)
		return
	}
	doc := sess.Document()
	if doc == nil {
		jsonError(w, "session has no analyzed document", http.StatusBadRequest)
		return
	}

	// Re-mark selection from the request; the stored candidates keep the
	// detector's defaults.
	wanted := make(map[int]bool, len(req.Chapters))
	for _, idx := range req.Chapters {
		wanted[idx] = true
	}
	candidates := sess.Chapters()
	for i := range candidates {
		candidates[i].Selected = wanted[candidates[i].Index]
	}

	// Selecting chapter indices implies promotion, matching the upload UI
	// which sends indices without a separate heading fix.
	fixIDs := req.Fixes
	if len(req.Chapters) > 0 {
		fixIDs = append(append([]string{}, req.Fixes...), analyze.IssueHeadings)
	}

	formatted, applied := fix.Apply(doc, fixIDs, candidates)

	// Artifacts land at fixed paths per session; serialize generation so
	// concurrent requests cannot interleave writes.
	sess.LockProcessing()
	defer sess.UnlockProcessing()

	outDir := filepath.Join(s.cfg.OutputDir, sess.ID)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		jsonError(w, "failed to prepare output directory", http.StatusInternalServerError)
		return
	}

	stem := strings.TrimSuffix(sess.Filename, filepath.Ext(sess.Filename))
	files := map[string]string{}

	// Exports segment at styled headings, so only promoted chapters count.
	exportable := styledCandidates(formatted, candidates)

	docxPath := filepath.Join(outDir, stem+"_formatted.docx")
	if err := docio.WriteFile(formatted, docxPath); err != nil {
		jsonError(w, "failed to write docx: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sess.SetOutput("docx", docxPath)
	files["docx"] = downloadURL(sess.ID, "docx")

	epubPath := filepath.Join(outDir, stem+".epub")
	if err := export.WriteEPUB(formatted, exportable, "", epubPath); err != nil {
		jsonError(w, "failed to write epub: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sess.SetOutput("epub", epubPath)
	files["epub"] = downloadURL(sess.ID, "epub")

	pdfPath := filepath.Join(outDir, stem+".pdf")
	skipped, err := export.WritePDF(formatted, exportable, pdfPath)
	if err != nil {
		jsonError(w, "failed to write pdf: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sess.SetOutput("pdf", pdfPath)
	files["pdf"] = downloadURL(sess.ID, "pdf")

	s.log.Info("session processed",
		"session_id", sess.ID,
		"fixes_applied", len(applied),
		"chapters", len(exportable),
		"pdf_paragraphs_skipped", skipped,
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id":    sess.ID,
		"fixes_applied": applied,
		"files":         files,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	fileType := chi.URLParam(r, "fileType")

	sess := s.sessions.Get(sessionID)
	if sess == nil {
		jsonError(w, "unknown session", http.StatusBadRequest)
		return
	}
	path := sess.Output(fileType)
	if path == "" {
		jsonError(w, "no such file for session", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

// styledCandidates keeps the selected candidates whose paragraph actually
// carries the heading style in the formatted document.
func styledCandidates(doc *bookdoc.Document, candidates []analyze.ChapterCandidate) []analyze.ChapterCandidate {
	var out []analyze.ChapterCandidate
	for _, c := range candidates {
		if !c.Selected || c.Index < 0 || c.Index >= len(doc.Paragraphs) {
			continue
		}
		if doc.Paragraphs[c.Index].Style == bookdoc.StyleHeading1 {
			out = append(out, c)
		}
	}
	return out
}

func downloadURL(sessionID, fileType string) string {
	return fmt.Sprintf("/api/download/%s/%s", sessionID, fileType)
}
