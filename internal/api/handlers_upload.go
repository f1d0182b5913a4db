package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/docio"
)

type analysisPayload struct {
	Chapters []analyze.ChapterCandidate `json:"chapters"`
	Issues   []analyze.Issue            `json:"issues"`
	Stats    analyze.DocStats           `json:"stats"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size; extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".docx") {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		jsonError(w, "failed to prepare upload directory", http.StatusInternalServerError)
		return
	}

	uploadPath := filepath.Join(s.cfg.UploadDir, uuid.NewString()+"_"+filename)
	out, err := os.Create(uploadPath)
	if err != nil {
		jsonError(w, "failed to store upload", http.StatusInternalServerError)
		return
	}

	n, err := io.Copy(out, io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	out.Close()
	if err != nil {
		os.Remove(uploadPath)
		jsonError(w, "failed to store upload", http.StatusInternalServerError)
		return
	}
	if n > s.cfg.MaxUploadBytes {
		os.Remove(uploadPath)
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	doc, err := docio.ReadFile(uploadPath)
	if err != nil {
		os.Remove(uploadPath)
		jsonError(w, "failed to parse document: "+err.Error(), http.StatusBadRequest)
		return
	}

	chapters := analyze.DetectChapters(doc)
	issues := analyze.DetectIssues(doc, chapters, s.cfg.Thresholds())

	sess := s.sessions.Create(filename, uploadPath)
	sess.SetAnalysis(doc, chapters, issues)

	s.log.Info("upload analyzed",
		"session_id", sess.ID,
		"filename", filename,
		"chapters", len(chapters),
		"issues", len(issues),
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id": sess.ID,
		"filename":   filename,
		"analysis": analysisPayload{
			Chapters: chapters,
			Issues:   issues,
			Stats:    analyze.Stats(doc),
		},
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
