// Package session tracks uploaded manuscripts between the analyze and
// process steps of the web workflow.
package session

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/libroready/libroready/internal/analyze"
	"github.com/libroready/libroready/internal/bookdoc"
)

// Session holds one uploaded manuscript and the analysis derived from it.
// All mutation goes through methods that take the session lock.
type Session struct {
	mu   sync.Mutex
	proc sync.Mutex

	ID         string
	Filename   string
	UploadPath string

	doc      *bookdoc.Document
	chapters []analyze.ChapterCandidate
	issues   []analyze.Issue

	// fileType ("docx", "epub", "pdf", "cover") to path on disk.
	outputs map[string]string

	CreatedAt time.Time
	updatedAt time.Time
}

// SetAnalysis records the parsed document and its analysis.
func (s *Session) SetAnalysis(doc *bookdoc.Document, chapters []analyze.ChapterCandidate, issues []analyze.Issue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.chapters = chapters
	s.issues = issues
	s.updatedAt = time.Now()
}

// Document returns the parsed manuscript, or nil before analysis.
func (s *Session) Document() *bookdoc.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Chapters returns the detected chapter candidates.
func (s *Session) Chapters() []analyze.ChapterCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]analyze.ChapterCandidate, len(s.chapters))
	copy(out, s.chapters)
	return out
}

// Issues returns the detected issues.
func (s *Session) Issues() []analyze.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]analyze.Issue, len(s.issues))
	copy(out, s.issues)
	return out
}

// SetOutput records a generated file for later download.
func (s *Session) SetOutput(fileType, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs[fileType] = path
	s.updatedAt = time.Now()
}

// Output returns the path of a generated file, or "" if none exists.
func (s *Session) Output(fileType string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outputs[fileType]
}

// LockProcessing serializes artifact generation for the session. Output
// files are written at fixed paths under the session directory, so
// concurrent requests must not generate over each other.
func (s *Session) LockProcessing() {
	s.proc.Lock()
}

func (s *Session) UnlockProcessing() {
	s.proc.Unlock()
}

// Touch refreshes the session's TTL clock.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
}

func (s *Session) files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.outputs)+1)
	if s.UploadPath != "" {
		paths = append(paths, s.UploadPath)
	}
	for _, p := range s.outputs {
		paths = append(paths, p)
	}
	return paths
}

// Store is a thread-safe in-memory session registry with TTL eviction.
// Evicting a session also removes its files from disk.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a new session for an uploaded file.
func (s *Store) Create(filename, uploadPath string) *Session {
	now := time.Now()
	sess := &Session{
		ID:         uuid.NewString(),
		Filename:   filename,
		UploadPath: uploadPath,
		outputs:    make(map[string]string),
		CreatedAt:  now,
		updatedAt:  now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// Delete removes a session and its files.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	sess := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if sess != nil {
		removeFiles(sess)
	}
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup removes expired sessions and their files.
func (s *Store) Cleanup() {
	now := time.Now()

	s.mu.Lock()
	var expired []*Session
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := now.Sub(sess.updatedAt) > s.ttl
		sess.mu.Unlock()
		if stale {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		removeFiles(sess)
	}
}

func removeFiles(sess *Session) {
	for _, path := range sess.files() {
		os.Remove(path)
	}
}
