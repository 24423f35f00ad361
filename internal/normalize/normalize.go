// Package normalize splits raw catalog payloads into static movie records
// and volatile per-day sessions, and rebuilds the movie-centric view from
// the two halves. The split is what makes the cache worthwhile: static
// metadata is fetched once, only the session lists churn day to day.
package normalize

import (
	"time"

	"github.com/cinesystem/cinebot/internal/domain"
	"github.com/cinesystem/cinebot/internal/ingresso"
)

const (
	imageTypePoster   = "PosterPortrait"
	imageTypeBackdrop = "PosterHorizontal"
	defaultFormat     = "2D"
)

// audio track tag names; every other type tag is a projection format
const (
	tagDubbed    = "Dublado"
	tagSubtitled = "Legendado"
)

// SessionsResult is the normalized form of one sessions payload
type SessionsResult struct {
	Movies    map[string]domain.MovieStatic
	Sessions  []domain.Session
	Date      string
	FetchedAt time.Time
}

// ExtractMovieStatic converts a raw movie into its static record. Total:
// absent optional fields map to zero values, never an error.
func ExtractMovieStatic(raw ingresso.RawMovie) domain.MovieStatic {
	m := domain.MovieStatic{
		ID:             raw.ID,
		Title:          raw.Title,
		OriginalTitle:  raw.OriginalTitle,
		URLKey:         raw.URLKey,
		Duration:       int(raw.Duration),
		ContentRating:  raw.ContentRating,
		Genres:         raw.Genres,
		Distributor:    raw.Distributor,
		IsReexhibition: raw.IsReexhibition,
		InPreSale:      raw.InPreSale,
	}
	if m.Genres == nil {
		m.Genres = []string{}
	}
	if raw.RatingDetails != nil {
		m.RatingColor = raw.RatingDetails.Color
	}

	for _, img := range raw.Images {
		switch img.Type {
		case imageTypePoster:
			if m.Poster == "" {
				m.Poster = img.URL
			}
		case imageTypeBackdrop:
			if m.Backdrop == "" {
				m.Backdrop = img.URL
			}
		}
	}
	if len(raw.Trailers) > 0 {
		m.Trailer = raw.Trailers[0].URL
	}

	// completeTags supersedes the legacy tags field when present
	tags := raw.CompleteTags
	if len(tags) == 0 {
		tags = raw.Tags
	}
	m.Tags = make([]string, len(tags))
	for i, t := range tags {
		m.Tags[i] = string(t)
	}

	return m
}

// ExtractSessions flattens a movie's session-type groups into a flat session
// list tagged with the owning movie id. Order is preserved: outer group
// order, then inner session order.
func ExtractSessions(movieID string, groups []ingresso.SessionGroup) []domain.Session {
	var sessions []domain.Session

	for _, group := range groups {
		for _, s := range group.Sessions {
			format, audio := splitTypeTags(s.Types)
			sessions = append(sessions, domain.Session{
				ID:          s.ID,
				MovieID:     movieID,
				Time:        s.Time,
				Price:       s.Price,
				Room:        s.Room,
				Format:      format,
				Audio:       audio,
				CheckoutURL: s.SiteURL,
			})
		}
	}

	return sessions
}

// splitTypeTags partitions one session's type tags into projection format
// and audio track. The audio tag is the one named Dublado or Legendado; the
// first remaining tag is the format, defaulting to 2D.
func splitTypeTags(types []ingresso.TypeTag) (format, audio string) {
	format = defaultFormat
	formatSet := false
	for _, t := range types {
		if t.Name == tagDubbed || t.Name == tagSubtitled {
			if audio == "" {
				audio = t.Alias
			}
			continue
		}
		if !formatSet {
			format = t.Alias
			formatSet = true
		}
	}
	return format, audio
}

// NormalizeSessions splits a sessions payload into static movies and flat
// sessions. A payload without a movies list normalizes to an empty result.
// When the same movie id recurs across session-type groupings in one
// payload, the first occurrence supplies the static record. FetchedAt is
// always the supplied wall-clock time, never payload data.
func NormalizeSessions(resp ingresso.SessionsResponse, now time.Time) SessionsResult {
	result := SessionsResult{
		Movies:    map[string]domain.MovieStatic{},
		Sessions:  []domain.Session{},
		Date:      resp.Date,
		FetchedAt: now,
	}

	for _, raw := range resp.Movies {
		if _, seen := result.Movies[raw.ID]; !seen {
			result.Movies[raw.ID] = ExtractMovieStatic(raw)
		}
		result.Sessions = append(result.Sessions, ExtractSessions(raw.ID, raw.SessionTypes)...)
	}

	return result
}

// NormalizeComingSoon converts the coming-soon listing into upcoming entries
func NormalizeComingSoon(raw []ingresso.ComingSoonMovie) []domain.UpcomingMovie {
	items := make([]domain.UpcomingMovie, 0, len(raw))
	for _, m := range raw {
		item := domain.UpcomingMovie{
			ID:            m.ID,
			Title:         m.Title,
			PremiereDate:  m.PremiereDate,
			URLKey:        m.URLKey,
			ContentRating: m.ContentRating,
			Distributor:   m.Distributor,
			Genres:        m.Genres,
		}
		for _, img := range m.Images {
			if img.Type == imageTypePoster {
				item.Poster = img.URL
				break
			}
		}
		items = append(items, item)
	}
	return items
}
