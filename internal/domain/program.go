package domain

import "time"

// SessionView is a session as shown to consumers: the full ticket price plus
// the derived half price and free-showing flag.
type SessionView struct {
	Time         string   `json:"time"`
	SessionID    string   `json:"sessionId"`
	PriceInteira *float64 `json:"priceInteira"`
	PriceMeia    *float64 `json:"priceMeia"`
	Gratuito     bool     `json:"gratuito"`
	Room         string   `json:"room,omitempty"`
	Format       string   `json:"format"`
	Audio        string   `json:"audio,omitempty"`
}

// MovieProgram is the denormalized movie-centric view: the static record with
// its day's sessions embedded.
type MovieProgram struct {
	MovieStatic
	Name     string        `json:"name"`
	Sessions []SessionView `json:"sessions"`
}

// Program is one day's full schedule for a theater.
type Program struct {
	Movies    []MovieProgram `json:"movies"`
	Date      string         `json:"date"`
	ScrapedAt time.Time      `json:"scrapedAt"`
}

// Empty reports whether the program carries no sessions at all. An empty
// program is a successful result, not an error.
func (p Program) Empty() bool {
	return len(p.Movies) == 0
}
