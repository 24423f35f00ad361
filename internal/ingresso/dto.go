package ingresso

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/cinesystem/cinebot/internal/domain"
)

// Event is one entry of the theater's event listing
type Event struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Image is a typed artwork entry (e.g. "PosterPortrait", "PosterHorizontal")
type Image struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Trailer is a promotional video entry
type Trailer struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url"`
}

// Tag appears upstream either as a plain JSON string or as {"name": ...}.
// Both decode to the tag name.
type Tag string

func (t *Tag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Tag(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = Tag(obj.Name)
	return nil
}

// TypeTag classifies a session: audio track (Dublado/Legendado) or
// projection format (2D, 3D, IMAX, ...)
type TypeTag struct {
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

// Minutes decodes a duration that arrives either as a number or as a
// numeric string. Unparseable values decode to zero.
type Minutes int

func (m *Minutes) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*m = Minutes(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*m = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*m = 0
		return nil
	}
	*m = Minutes(n)
	return nil
}

// RawSession is one showtime inside a session-type group
type RawSession struct {
	ID      string    `json:"id"`
	Time    string    `json:"time"`
	Price   *float64  `json:"price"`
	Room    string    `json:"room"`
	Types   []TypeTag `json:"types"`
	SiteURL string    `json:"siteURL"`
}

// SessionGroup is one session-type grouping for a movie. CinemaID is only
// present on per-event responses, which mix sessions from every cinema in
// the city.
type SessionGroup struct {
	Type     string       `json:"type,omitempty"`
	CinemaID json.Number  `json:"cinemaId,omitempty"`
	Sessions []RawSession `json:"sessions"`
}

// RawMovie is a movie as the sessions endpoint delivers it: static metadata
// plus the nested session-type groups for the queried date
type RawMovie struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"originalTitle"`
	URLKey        string  `json:"urlKey"`
	Duration      Minutes `json:"duration"`
	ContentRating string  `json:"contentRating"`
	RatingDetails *struct {
		Color string `json:"color"`
	} `json:"ratingDetails"`
	Genres         []string       `json:"genres"`
	Distributor    string         `json:"distributor"`
	Images         []Image        `json:"images"`
	Trailers       []Trailer      `json:"trailers"`
	CompleteTags   []Tag          `json:"completeTags"`
	Tags           []Tag          `json:"tags"`
	IsReexhibition bool           `json:"isReexhibition"`
	InPreSale      bool           `json:"inPreSale"`
	SessionTypes   []SessionGroup `json:"sessionTypes"`
}

// SessionsResponse is the payload of the groupBy/sessionType endpoints. The
// API has been observed to return either a bare object or a one-element
// array wrapping it; both shapes decode to the same struct. Any other
// top-level shape is domain.ErrUnexpectedPayload.
type SessionsResponse struct {
	Date   string     `json:"date"`
	Movies []RawMovie `json:"movies"`
}

func (r *SessionsResponse) UnmarshalJSON(data []byte) error {
	type plain SessionsResponse

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return domain.ErrUnexpectedPayload
	}

	switch trimmed[0] {
	case '{':
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*r = SessionsResponse(p)
		return nil
	case '[':
		var list []plain
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			*r = SessionsResponse(list[0])
		} else {
			*r = SessionsResponse{}
		}
		return nil
	default:
		return domain.ErrUnexpectedPayload
	}
}

// ComingSoonMovie is one entry of the coming-soon listing
type ComingSoonMovie struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	PremiereDate  string   `json:"premiereDate"`
	URLKey        string   `json:"urlKey"`
	ContentRating string   `json:"contentRating"`
	Distributor   string   `json:"distributor"`
	Genres        []string `json:"genres"`
	Images        []Image  `json:"images"`
}
