// Package cache persists the normalized showtime data: static movie records
// that never expire, per-theater per-date session batches, and per-theater
// upcoming listings, the latter two valid only until the next midnight in
// the reference timezone.
//
// The store is written for one process at a time. The backing file is read
// on Load and replaced wholesale on every mutation; two processes sharing
// it would race on read-modify-write.
package cache

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/cinesystem/cinebot/internal/domain"
)

// root is the persisted aggregate. Sessions are keyed theater -> date.
type root struct {
	Movies          map[string]domain.MovieStatic             `json:"movies"`
	Sessions        map[string]map[string]domain.SessionBatch `json:"sessions"`
	Upcoming        map[string]domain.UpcomingBatch           `json:"upcoming"`
	MoviesUpdatedAt *time.Time                                `json:"moviesUpdatedAt"`
}

func emptyRoot() root {
	return root{
		Movies:   map[string]domain.MovieStatic{},
		Sessions: map[string]map[string]domain.SessionBatch{},
		Upcoming: map[string]domain.UpcomingBatch{},
	}
}

// Store is the normalized cache. Movies merge first-write-wins; session and
// upcoming batches overwrite last-write-wins. Every mutating call persists
// the full root through the backend.
type Store struct {
	backend Backend
	policy  *Policy
	logger  *slog.Logger
	data    root
}

func NewStore(backend Backend, policy *Policy, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		policy:  policy,
		logger:  logger,
		data:    emptyRoot(),
	}
}

// Load reads the backing blob. A missing or corrupt blob resets the store
// to empty with a warning; it never fails the caller.
func (s *Store) Load() {
	blob, err := s.backend.Read()
	if err != nil {
		// a missing blob is just a cold start; anything else deserves a trace
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("unreadable cache, reinitializing", "error", err)
		}
		s.data = emptyRoot()
		return
	}

	var data root
	if err := json.Unmarshal(blob, &data); err != nil {
		s.logger.Warn("corrupt cache, reinitializing", "error", err)
		s.data = emptyRoot()
		return
	}

	if data.Movies == nil {
		data.Movies = map[string]domain.MovieStatic{}
	}
	if data.Sessions == nil {
		data.Sessions = map[string]map[string]domain.SessionBatch{}
	}
	if data.Upcoming == nil {
		data.Upcoming = map[string]domain.UpcomingBatch{}
	}
	s.data = data
}

// Save serializes the full root through the backend. Failure is logged and
// returned, but callers treat it as non-fatal: the in-memory result of the
// current run still reaches the consumer.
func (s *Store) Save() error {
	blob, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		s.logger.Error("failed to serialize cache", "error", err)
		return err
	}
	if err := s.backend.Write(blob); err != nil {
		s.logger.Error("failed to persist cache", "error", err)
		return err
	}
	return nil
}

// MergeMovies inserts every incoming movie whose id is not yet stored and
// returns the number added. Ids already present keep their stored record
// untouched, even if the incoming one differs: first write wins.
func (s *Store) MergeMovies(movies map[string]domain.MovieStatic) int {
	added := 0
	for id, movie := range movies {
		if _, exists := s.data.Movies[id]; !exists {
			s.data.Movies[id] = movie
			added++
		}
	}
	if added > 0 {
		now := s.policy.Now()
		s.data.MoviesUpdatedAt = &now
		s.logger.Info("new static movies cached", "added", added)
	}
	s.Save()
	return added
}

// SetSessions overwrites the batch for a (theater, date) key unconditionally,
// purges dates that have already passed, and persists.
func (s *Store) SetSessions(theaterID, date string, sessions []domain.Session, fetchedAt time.Time) {
	theater := s.data.Sessions[theaterID]
	if theater == nil {
		theater = map[string]domain.SessionBatch{}
		s.data.Sessions[theaterID] = theater
	}
	theater[date] = domain.SessionBatch{FetchedAt: fetchedAt, Items: sessions}

	s.purgeOldSessions()
	s.Save()
	s.logger.Info("sessions cached", "theater", theaterID, "date", date, "count", len(sessions))
}

// GetSessions returns the batch for a (theater, date) key if it was fetched
// on the current reference-timezone day. A stale batch is removed from the
// in-memory store and reported as a miss; the removal reaches the backing
// file on the next Save.
func (s *Store) GetSessions(theaterID, date string) (domain.SessionBatch, bool) {
	theater := s.data.Sessions[theaterID]
	if theater == nil {
		return domain.SessionBatch{}, false
	}

	batch, ok := theater[date]
	if !ok || batch.FetchedAt.IsZero() {
		return domain.SessionBatch{}, false
	}

	if !s.policy.SameLocalDay(batch.FetchedAt) {
		s.logger.Info("session cache expired", "theater", theaterID, "date", date,
			"fetchedAt", batch.FetchedAt)
		delete(theater, date)
		return domain.SessionBatch{}, false
	}

	s.logger.Debug("session cache hit", "theater", theaterID, "date", date)
	return batch, true
}

// SetUpcoming overwrites a theater's upcoming listing and persists.
func (s *Store) SetUpcoming(theaterID string, items []domain.UpcomingMovie, fetchedAt time.Time) {
	s.data.Upcoming[theaterID] = domain.UpcomingBatch{FetchedAt: fetchedAt, Items: items}
	s.Save()
	s.logger.Info("upcoming releases cached", "theater", theaterID, "count", len(items))
}

// GetUpcoming returns a theater's upcoming listing under the same freshness
// rule as sessions.
func (s *Store) GetUpcoming(theaterID string) (domain.UpcomingBatch, bool) {
	batch, ok := s.data.Upcoming[theaterID]
	if !ok || batch.FetchedAt.IsZero() {
		return domain.UpcomingBatch{}, false
	}

	if !s.policy.SameLocalDay(batch.FetchedAt) {
		s.logger.Info("upcoming cache expired", "theater", theaterID, "fetchedAt", batch.FetchedAt)
		delete(s.data.Upcoming, theaterID)
		return domain.UpcomingBatch{}, false
	}

	return batch, true
}

// Movie returns one static record by id
func (s *Store) Movie(id string) (domain.MovieStatic, bool) {
	m, ok := s.data.Movies[id]
	return m, ok
}

// AllMovies returns the full static movie map. Callers must not mutate it.
func (s *Store) AllMovies() map[string]domain.MovieStatic {
	return s.data.Movies
}

// purgeOldSessions drops every date key strictly before today across all
// theaters. Dates are YYYY-MM-DD, so lexicographic order is date order.
// Runs only on the write path: reads rely on the freshness check instead.
func (s *Store) purgeOldSessions() {
	today := s.policy.Today(0)
	for _, theater := range s.data.Sessions {
		for date := range theater {
			if date < today {
				delete(theater, date)
			}
		}
	}
}
