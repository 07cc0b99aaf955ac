// Package service exposes the matching engine over file paths: it validates
// the user's selections, reads both tables, runs the join and keeps the
// outcome as a pageable session.
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"student-aid-matcher/db"
	"student-aid-matcher/logger"
	"student-aid-matcher/matcher"
	"student-aid-matcher/models"
	"student-aid-matcher/sheets"
)

var (
	// ErrMissingSelection reports a file or category the user has not chosen yet.
	ErrMissingSelection = errors.New("missing selection")
	// ErrSessionNotFound reports an unknown or expired session.
	ErrSessionNotFound = errors.New("session not found")
)

// QueryRequest names the two tables and the category to match on.
type QueryRequest struct {
	StudentPath    string `json:"studentPath"`
	DifficultyPath string `json:"difficultyPath"`
	Category       string `json:"category"`
}

// Validate catches missing selections before any file is read.
func (r QueryRequest) Validate() error {
	switch {
	case r.StudentPath == "":
		return fmt.Errorf("%w: please choose the student table", ErrMissingSelection)
	case r.DifficultyPath == "":
		return fmt.Errorf("%w: please choose the difficulty-type table", ErrMissingSelection)
	case r.Category == "":
		return fmt.Errorf("%w: please choose a difficulty type", ErrMissingSelection)
	}
	return nil
}

// QueryOutcome is the combined answer of Query. Either part may be missing
// when its operation failed.
type QueryOutcome struct {
	SessionID  string                  `json:"sessionId,omitempty"`
	Matches    []models.MatchResult    `json:"matches"`
	Statistics *models.MatchStatistics `json:"statistics,omitempty"`
}

// Service runs queries against the spreadsheets and keeps their sessions.
type Service struct {
	store    db.SessionStore
	log      *logger.Logger
	pageSize int
	now      func() time.Time
	newID    func() string

	// the two halves of Query
	findMatches   func(QueryRequest) ([]models.MatchResult, error)
	getStatistics func(QueryRequest) (models.MatchStatistics, error)
}

// New creates a Service. pageSize is the default page length of a session.
func New(store db.SessionStore, log *logger.Logger, pageSize int) *Service {
	s := &Service{
		store:    store,
		log:      log,
		pageSize: pageSize,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	s.findMatches = s.FindMatches
	s.getStatistics = s.GetStatistics
	return s
}

// DefaultPageSize is the page length used when a request does not give one.
func (s *Service) DefaultPageSize() int { return s.pageSize }

// ListCategories returns the category dropdown entries.
func (s *Service) ListCategories() []models.CategoryOption {
	all := models.AllDifficultyTypes()
	out := make([]models.CategoryOption, len(all))
	for i, dt := range all {
		out[i] = models.CategoryOption{Label: dt.String(), Value: dt}
	}
	return out
}

// ValidateFile checks a spreadsheet chosen in the file picker.
func (s *Service) ValidateFile(path string) (models.FileInfo, error) {
	info, err := sheets.ValidateFile(path)
	if err != nil {
		s.log.Info("File rejected", "path", path, "error", err)
		return models.FileInfo{}, err
	}
	return info, nil
}

// load reads both tables. For an unknown category the difficulty table is
// not read and records is nil.
func (s *Service) load(req QueryRequest) ([]models.Student, []models.DifficultyRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	students, err := sheets.ReadStudents(req.StudentPath)
	if err != nil {
		return nil, nil, fmt.Errorf("student table: %w", err)
	}

	category, ok := models.ParseDifficultyType(req.Category)
	if !ok {
		s.log.Info("Unknown difficulty type, nothing to match", "category", req.Category)
		return students, nil, nil
	}
	records, err := sheets.ReadDifficultyRecords(req.DifficultyPath, category)
	if err != nil {
		return nil, nil, fmt.Errorf("difficulty table: %w", err)
	}
	return students, records, nil
}

// FindMatches reads both tables and returns the matches for the category.
func (s *Service) FindMatches(req QueryRequest) ([]models.MatchResult, error) {
	students, records, err := s.load(req)
	if err != nil {
		return nil, err
	}
	if dups := matcher.DuplicateIDs(students); len(dups) > 0 {
		s.log.Warn("Student table repeats identity numbers; the last row wins",
			"file", filepath.Base(req.StudentPath), "count", len(dups), "id_numbers", dups)
	}
	matches := matcher.FindMatches(students, records, models.DifficultyType(req.Category))
	s.log.Info("Matched students",
		"category", req.Category, "students", len(students), "records", len(records), "matches", len(matches))
	return matches, nil
}

// GetStatistics reads both tables and returns the aggregate counts.
func (s *Service) GetStatistics(req QueryRequest) (models.MatchStatistics, error) {
	students, records, err := s.load(req)
	if err != nil {
		return models.MatchStatistics{}, err
	}
	return matcher.ComputeStatistics(students, records, models.DifficultyType(req.Category)), nil
}

// Query runs FindMatches and GetStatistics concurrently and waits for both.
// If either fails, the error of that operation is returned together with
// whatever the other one produced. A successful match list is saved as a
// session for paging and export.
func (s *Service) Query(ctx context.Context, req QueryRequest) (QueryOutcome, error) {
	if err := req.Validate(); err != nil {
		return QueryOutcome{}, err
	}

	var (
		g        errgroup.Group
		matches  []models.MatchResult
		stats    models.MatchStatistics
		matchErr error
		statsErr error
	)
	g.Go(func() error {
		matches, matchErr = s.findMatches(req)
		return matchErr
	})
	g.Go(func() error {
		stats, statsErr = s.getStatistics(req)
		return statsErr
	})
	err := g.Wait()

	out := QueryOutcome{Matches: matches}
	if statsErr == nil {
		out.Statistics = &stats
	}
	if matchErr == nil {
		out.SessionID = s.saveSession(ctx, req, matches, out.Statistics)
	}
	if err != nil {
		s.log.With("category", req.Category).Warn("Query failed",
			"matches_ok", matchErr == nil, "statistics_ok", statsErr == nil, "error", err)
		return out, err
	}
	return out, nil
}

// saveSession keeps the matches for paging. stats is nil when the statistics
// half failed. A store failure is logged and the query still succeeds.
func (s *Service) saveSession(ctx context.Context, req QueryRequest, matches []models.MatchResult, stats *models.MatchStatistics) string {
	session := models.Session{
		ID:             s.newID(),
		Category:       models.DifficultyType(req.Category),
		StudentFile:    filepath.Base(req.StudentPath),
		DifficultyFile: filepath.Base(req.DifficultyPath),
		Matches:        matches,
		Statistics:     stats,
		CreatedAt:      s.now(),
	}
	if err := s.store.Save(ctx, session); err != nil {
		s.log.Warn("Could not save session", "session", session.ID, "error", err)
		return ""
	}
	return session.ID
}

// Session loads a saved session.
func (s *Service) Session(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// Page returns one page of a session's matches. pageSize <= 0 selects the
// configured default.
func (s *Service) Page(ctx context.Context, id string, page, pageSize int) (models.Page[models.MatchResult], error) {
	session, err := s.Session(ctx, id)
	if err != nil {
		return models.Page[models.MatchResult]{}, err
	}
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	return models.Paginate(session.Matches, page, pageSize), nil
}

// ListSessions returns the live sessions, newest first.
func (s *Service) ListSessions(ctx context.Context) ([]models.SessionSummary, error) {
	return s.store.List(ctx)
}

// DeleteSession forgets a session.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Export writes matches to outputPath and returns the path written.
func (s *Service) Export(matches []models.MatchResult, outputPath string) (string, error) {
	if outputPath == "" {
		return "", fmt.Errorf("%w: please choose where to save the export", ErrMissingSelection)
	}
	path, err := sheets.WriteMatches(matches, outputPath)
	if err != nil {
		s.log.Error("Export failed", "path", outputPath, "error", err)
		return "", err
	}
	s.log.Info("Exported matches", "path", path, "rows", len(matches))
	return path, nil
}

// ExportSession writes the matches of a saved session.
func (s *Service) ExportSession(ctx context.Context, id, outputPath string) (string, error) {
	session, err := s.Session(ctx, id)
	if err != nil {
		return "", err
	}
	return s.Export(session.Matches, outputPath)
}
