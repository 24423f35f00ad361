// Package service orchestrates the fetch-normalize-cache-denormalize
// pipeline over the catalog client and the cache store.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cinesystem/cinebot/internal/cache"
	"github.com/cinesystem/cinebot/internal/domain"
	"github.com/cinesystem/cinebot/internal/ingresso"
	"github.com/cinesystem/cinebot/internal/normalize"
)

// Catalog is the slice of the Ingresso client the pipeline needs
type Catalog interface {
	Events(ctx context.Context, theaterID string) ([]ingresso.Event, error)
	EventSessions(ctx context.Context, eventID, date, theaterID string) (ingresso.SessionsResponse, error)
	ComingSoon(ctx context.Context) ([]ingresso.ComingSoonMovie, error)
}

// ProgramService produces a theater's daily program, serving repeat queries
// within the same reference-timezone day from the cache.
type ProgramService struct {
	catalog   Catalog
	store     *cache.Store
	policy    *cache.Policy
	theaterID string
	stateDir  string
	logger    *slog.Logger
}

func NewProgramService(catalog Catalog, store *cache.Store, policy *cache.Policy, theaterID, stateDir string, logger *slog.Logger) *ProgramService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgramService{
		catalog:   catalog,
		store:     store,
		policy:    policy,
		theaterID: theaterID,
		stateDir:  stateDir,
		logger:    logger,
	}
}

// ResolveDate maps an optional user-supplied date to the date queried
// upstream. Empty means today in the reference timezone.
func (s *ProgramService) ResolveDate(date string) string {
	if date == "" {
		return s.policy.Today(0)
	}
	return date
}

// ResolveDateOffset returns the reference date shifted by offsetDays,
// e.g. 1 for tomorrow's program.
func (s *ProgramService) ResolveDateOffset(offsetDays int) string {
	return s.policy.Today(offsetDays)
}

// FetchProgram returns the denormalized program for a date, fetching from
// the catalog only when the cache has no batch fetched today. A program
// with zero movies is a successful result; an error means nothing could be
// produced at all.
func (s *ProgramService) FetchProgram(ctx context.Context, date string) (domain.Program, error) {
	date = s.ResolveDate(date)

	if batch, ok := s.store.GetSessions(s.theaterID, date); ok {
		return domain.Program{
			Movies:    normalize.Denormalize(s.store.AllMovies(), batch.Items),
			Date:      date,
			ScrapedAt: batch.FetchedAt,
		}, nil
	}

	events, err := s.catalog.Events(ctx, s.theaterID)
	if err != nil {
		return domain.Program{}, err
	}
	s.logger.Info("events found", "count", len(events), "date", date)

	movies := map[string]domain.MovieStatic{}
	var sessions []domain.Session
	fetchedAt := s.policy.Now()

	// One event failing to load must not sink the rest of the program
	for _, event := range events {
		resp, err := s.catalog.EventSessions(ctx, event.ID, date, s.theaterID)
		if err != nil {
			s.logger.Warn("skipping event, sessions fetch failed",
				"event", event.ID, "title", event.Title, "error", err)
			continue
		}

		result := normalize.NormalizeSessions(resp, fetchedAt)
		for id, movie := range result.Movies {
			if _, seen := movies[id]; !seen {
				movies[id] = movie
			}
		}
		sessions = append(sessions, result.Sessions...)
	}

	s.store.MergeMovies(movies)
	s.store.SetSessions(s.theaterID, date, sessions, fetchedAt)

	return domain.Program{
		Movies:    normalize.Denormalize(s.store.AllMovies(), sessions),
		Date:      date,
		ScrapedAt: fetchedAt,
	}, nil
}

// Upcoming returns the theater's coming-soon listing under the same
// cache-first, expire-at-midnight discipline as sessions.
func (s *ProgramService) Upcoming(ctx context.Context) ([]domain.UpcomingMovie, error) {
	if batch, ok := s.store.GetUpcoming(s.theaterID); ok {
		return batch.Items, nil
	}

	raw, err := s.catalog.ComingSoon(ctx)
	if err != nil {
		return nil, err
	}

	items := normalize.NormalizeComingSoon(raw)
	s.store.SetUpcoming(s.theaterID, items, s.policy.Now())
	return items, nil
}

// state.json mirrors what downstream consumers of the original CLI read
type stateFile struct {
	Movies    []domain.MovieProgram `json:"movies"`
	ScrapedAt time.Time             `json:"scrapedAt"`
}

// SaveState writes the run's result for downstream consumption. Failure is
// logged and returned but never blocks delivering the in-memory program.
func (s *ProgramService) SaveState(program domain.Program) error {
	if err := os.MkdirAll(s.stateDir, 0755); err != nil {
		s.logger.Error("failed to create state directory", "error", err)
		return err
	}

	movies := program.Movies
	if movies == nil {
		movies = []domain.MovieProgram{}
	}
	blob, err := json.MarshalIndent(stateFile{Movies: movies, ScrapedAt: program.ScrapedAt}, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(s.stateDir, "state.json")
	if err := os.WriteFile(path, blob, 0644); err != nil {
		s.logger.Error("failed to write state file", "path", path, "error", err)
		return err
	}
	return nil
}
