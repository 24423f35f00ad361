package normalize

import (
	"math"

	"github.com/cinesystem/cinebot/internal/domain"
)

// Denormalize rebuilds the movie-centric view from the split stores. Movies
// appear in first-appearance order of the session slice, not map order. A
// session whose movie id has no static record is dropped silently together
// with the rest of its group: a dangling reference degrades the view, it
// never aborts it.
func Denormalize(movies map[string]domain.MovieStatic, sessions []domain.Session) []domain.MovieProgram {
	index := map[string]int{}
	var out []domain.MovieProgram

	for _, s := range sessions {
		i, seen := index[s.MovieID]
		if !seen {
			movie, ok := movies[s.MovieID]
			if !ok {
				continue
			}
			out = append(out, domain.MovieProgram{
				MovieStatic: movie,
				Name:        movie.Title,
				Sessions:    []domain.SessionView{},
			})
			i = len(out) - 1
			index[s.MovieID] = i
		}
		out[i].Sessions = append(out[i].Sessions, toSessionView(s))
	}

	return out
}

func toSessionView(s domain.Session) domain.SessionView {
	view := domain.SessionView{
		Time:         s.Time,
		SessionID:    s.ID,
		PriceInteira: s.Price,
		Gratuito:     s.Price == nil || *s.Price == 0,
		Room:         s.Room,
		Format:       s.Format,
		Audio:        s.Audio,
	}
	if !view.Gratuito {
		meia := math.Round(*s.Price/2*100) / 100
		view.PriceMeia = &meia
	}
	return view
}
