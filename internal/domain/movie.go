package domain

import "time"

// MovieStatic holds the attributes of a movie that do not change across
// dates or cinemas. Records are written once into the cache and never
// overwritten by later fetches; stale artwork is an accepted tradeoff.
type MovieStatic struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	OriginalTitle  string   `json:"originalTitle,omitempty"`
	URLKey         string   `json:"urlKey"`
	Duration       int      `json:"duration,omitempty"` // minutes, 0 = unknown
	ContentRating  string   `json:"contentRating,omitempty"`
	RatingColor    string   `json:"ratingColor,omitempty"`
	Genres         []string `json:"genres"`
	Distributor    string   `json:"distributor,omitempty"`
	Poster         string   `json:"poster,omitempty"`
	Backdrop       string   `json:"backdrop,omitempty"`
	Trailer        string   `json:"trailer,omitempty"`
	Tags           []string `json:"tags"`
	IsReexhibition bool     `json:"isReexhibition"`
	InPreSale      bool     `json:"inPreSale"`
}

// Session is one scheduled showtime. Everything here varies per day or per
// cinema: time, price, room, projection format and audio track.
type Session struct {
	ID          string   `json:"id"`
	MovieID     string   `json:"movieId"`
	Time        string   `json:"time"`
	Price       *float64 `json:"price"` // nil = free showing
	Room        string   `json:"room,omitempty"`
	Format      string   `json:"format"`
	Audio       string   `json:"audio,omitempty"`
	CheckoutURL string   `json:"checkoutUrl,omitempty"`
}

// SessionBatch is the cached session list for one (theater, date) pair,
// tagged with the fetch time used for expiry.
type SessionBatch struct {
	FetchedAt time.Time `json:"fetchedAt"`
	Items     []Session `json:"items"`
}

// UpcomingMovie is one entry of a theater's coming-soon listing.
type UpcomingMovie struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	PremiereDate  string   `json:"premiereDate,omitempty"`
	URLKey        string   `json:"urlKey,omitempty"`
	Poster        string   `json:"poster,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Distributor   string   `json:"distributor,omitempty"`
	ContentRating string   `json:"contentRating,omitempty"`
}

// UpcomingBatch is the cached coming-soon listing for one theater.
type UpcomingBatch struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Items     []UpcomingMovie `json:"items"`
}
