package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/libroready/libroready/internal/premium"
	"github.com/libroready/libroready/internal/session"
)

type premiumRequest struct {
	SessionID string `json:"session_id"`

	// Description optimization.
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`

	// Cover generation.
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Author   string `json:"author"`
	Genre    string `json:"genre"`
}

// premiumSession decodes the request and resolves its session, writing the
// error response itself when either step fails.
func (s *Server) premiumSession(w http.ResponseWriter, r *http.Request) (*session.Session, premiumRequest, bool) {
	var req premiumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return nil, req, false
	}
	sess := s.sessions.Get(req.SessionID)
	if sess == nil {
		jsonError(w, "unknown session", http.StatusBadRequest)
		return nil, req, false
	}
	return sess, req, true
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := s.premiumSession(w, r)
	if !ok {
		return
	}

	sample, err := premium.SampleText(sess.UploadPath)
	if err != nil {
		jsonError(w, "failed to sample manuscript: "+err.Error(), http.StatusInternalServerError)
		return
	}

	title := titleFromFilename(sess.Filename)
	analysis := premium.AnalyzeKeywords(sample, title)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analysis)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := s.premiumSession(w, r)
	if !ok {
		return
	}

	sample, err := premium.SampleText(sess.UploadPath)
	if err != nil {
		jsonError(w, "failed to sample manuscript: "+err.Error(), http.StatusInternalServerError)
		return
	}

	title := titleFromFilename(sess.Filename)
	genre := premium.DetectGenre(sample, title)
	themes := premium.ExtractThemes(sample)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"genre":      genre,
		"categories": premium.RecommendCategories(genre, themes, title),
	})
}

func (s *Server) handleDescription(w http.ResponseWriter, r *http.Request) {
	sess, req, ok := s.premiumSession(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		jsonError(w, "description is required", http.StatusBadRequest)
		return
	}

	genre := req.Genre
	if genre == "" {
		if sample, err := premium.SampleText(sess.UploadPath); err == nil {
			genre = premium.DetectGenre(sample, titleFromFilename(sess.Filename))
		} else {
			genre = premium.GenreLiterary
		}
	}

	result := premium.OptimizeDescription(req.Description, genre, req.Keywords)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) handleCover(w http.ResponseWriter, r *http.Request) {
	sess, req, ok := s.premiumSession(w, r)
	if !ok {
		return
	}

	title := req.Title
	if title == "" {
		title = titleFromFilename(sess.Filename)
	}

	sess.LockProcessing()
	defer sess.UnlockProcessing()

	outDir := filepath.Join(s.cfg.OutputDir, sess.ID)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		jsonError(w, "failed to prepare output directory", http.StatusInternalServerError)
		return
	}

	coverPath := filepath.Join(outDir, "cover.png")
	spec := premium.CoverSpec{
		Title:    title,
		Subtitle: req.Subtitle,
		Author:   req.Author,
		Genre:    req.Genre,
		FontPath: s.cfg.CoverFontPath,
	}
	if err := premium.WriteCoverPNG(spec, coverPath); err != nil {
		jsonError(w, "failed to render cover: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sess.SetOutput("cover", coverPath)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id": sess.ID,
		"cover_url":  "/api/premium/cover/" + sess.ID,
	})
}

func (s *Server) handleCoverImage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		jsonError(w, "unknown session", http.StatusBadRequest)
		return
	}
	path := sess.Output("cover")
	if path == "" {
		jsonError(w, "no cover for session", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, path)
}

func titleFromFilename(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.ReplaceAll(strings.ReplaceAll(stem, "_", " "), "-", " ")
}
