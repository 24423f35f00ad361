package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cinesystem/cinebot/internal/ingresso"
)

func float(v float64) *float64 { return &v }

func TestExtractMovieStaticMissingOptionals(t *testing.T) {
	m := ExtractMovieStatic(ingresso.RawMovie{ID: "90210", Title: "Som Livre"})

	if m.ID != "90210" || m.Title != "Som Livre" {
		t.Fatalf("identity fields lost: %+v", m)
	}
	if m.Genres == nil {
		t.Fatalf("genres must never be nil")
	}
	if m.Tags == nil {
		t.Fatalf("tags must never be nil")
	}
	if m.Poster != "" || m.Backdrop != "" || m.Trailer != "" {
		t.Fatalf("absent artwork should stay empty: %+v", m)
	}
	if m.Duration != 0 {
		t.Fatalf("absent duration should be zero, got %d", m.Duration)
	}
}

func TestExtractMovieStaticArtworkSelection(t *testing.T) {
	raw := ingresso.RawMovie{
		ID:    "1",
		Title: "Filme",
		Images: []ingresso.Image{
			{Type: "Onboarding", URL: "https://img/x.jpg"},
			{Type: "PosterHorizontal", URL: "https://img/back.jpg"},
			{Type: "PosterPortrait", URL: "https://img/poster.jpg"},
			{Type: "PosterPortrait", URL: "https://img/second.jpg"},
		},
		Trailers: []ingresso.Trailer{{URL: "https://yt/t1"}, {URL: "https://yt/t2"}},
		RatingDetails: &struct {
			Color string `json:"color"`
		}{Color: "#FFCD00"},
	}

	m := ExtractMovieStatic(raw)
	if m.Poster != "https://img/poster.jpg" {
		t.Fatalf("poster selection failed: %q", m.Poster)
	}
	if m.Backdrop != "https://img/back.jpg" {
		t.Fatalf("backdrop selection failed: %q", m.Backdrop)
	}
	if m.Trailer != "https://yt/t1" {
		t.Fatalf("trailer should be the first entry: %q", m.Trailer)
	}
	if m.RatingColor != "#FFCD00" {
		t.Fatalf("rating color lost: %q", m.RatingColor)
	}
}

func TestExtractMovieStaticTagPrecedence(t *testing.T) {
	raw := ingresso.RawMovie{
		ID:           "1",
		CompleteTags: []ingresso.Tag{"Estreia", "Nacional"},
		Tags:         []ingresso.Tag{"legado"},
	}
	m := ExtractMovieStatic(raw)
	if len(m.Tags) != 2 || m.Tags[0] != "Estreia" || m.Tags[1] != "Nacional" {
		t.Fatalf("completeTags should win: %v", m.Tags)
	}

	raw.CompleteTags = nil
	m = ExtractMovieStatic(raw)
	if len(m.Tags) != 1 || m.Tags[0] != "legado" {
		t.Fatalf("tags fallback failed: %v", m.Tags)
	}
}

func TestSplitTypeTags(t *testing.T) {
	cases := []struct {
		name       string
		types      []ingresso.TypeTag
		wantFormat string
		wantAudio  string
	}{
		{"empty", nil, "2D", ""},
		{"dubbed 3d", []ingresso.TypeTag{
			{Name: "Dublado", Alias: "DUB"},
			{Name: "3D", Alias: "3D"},
		}, "3D", "DUB"},
		{"subtitled only", []ingresso.TypeTag{
			{Name: "Legendado", Alias: "LEG"},
		}, "2D", "LEG"},
		{"format only", []ingresso.TypeTag{
			{Name: "IMAX", Alias: "IMAX"},
		}, "IMAX", ""},
		{"format before audio", []ingresso.TypeTag{
			{Name: "VIP", Alias: "VIP"},
			{Name: "Dublado", Alias: "DUB"},
		}, "VIP", "DUB"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			format, audio := splitTypeTags(c.types)
			if format != c.wantFormat || audio != c.wantAudio {
				t.Fatalf("got (%q, %q), want (%q, %q)", format, audio, c.wantFormat, c.wantAudio)
			}
		})
	}
}

func TestExtractSessionsOrderAndTagging(t *testing.T) {
	groups := []ingresso.SessionGroup{
		{Sessions: []ingresso.RawSession{
			{ID: "s1", Time: "14:00", Price: float(30)},
			{ID: "s2", Time: "16:30", Price: float(30)},
		}},
		{Sessions: []ingresso.RawSession{
			{ID: "s3", Time: "19:00", Room: "Sala 5", SiteURL: "https://checkout/s3"},
		}},
	}

	sessions := ExtractSessions("m1", groups)
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i, wantID := range []string{"s1", "s2", "s3"} {
		if sessions[i].ID != wantID {
			t.Fatalf("order not preserved: %v", sessions)
		}
		if sessions[i].MovieID != "m1" {
			t.Fatalf("session %s not tagged with movie id", sessions[i].ID)
		}
	}
	if sessions[2].Room != "Sala 5" || sessions[2].CheckoutURL != "https://checkout/s3" {
		t.Fatalf("pass-through fields lost: %+v", sessions[2])
	}
}

func sessionsPayload(t *testing.T, raw string) ingresso.SessionsResponse {
	t.Helper()
	var resp ingresso.SessionsResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("payload did not decode: %v", err)
	}
	return resp
}

const twoMoviePayload = `{
	"date": "2026-03-10",
	"movies": [
		{"id": "A", "title": "Filme A", "sessionTypes": [
			{"sessions": [{"id": "a1", "time": "14:00"}, {"id": "a2", "time": "16:00"}]},
			{"sessions": [{"id": "a3", "time": "18:00"}, {"id": "a4", "time": "20:00"}, {"id": "a5", "time": "22:00"}]}
		]},
		{"id": "B", "title": "Filme B", "sessionTypes": [
			{"sessions": [{"id": "b1", "time": "15:00"}]}
		]}
	]
}`

func TestNormalizeSessionsScenario(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	result := NormalizeSessions(sessionsPayload(t, twoMoviePayload), now)

	if len(result.Movies) != 2 {
		t.Fatalf("expected movies {A, B}, got %v", result.Movies)
	}
	if len(result.Sessions) != 6 {
		t.Fatalf("expected 6 sessions, got %d", len(result.Sessions))
	}
	if result.Date != "2026-03-10" {
		t.Fatalf("date lost: %q", result.Date)
	}
	if !result.FetchedAt.Equal(now) {
		t.Fatalf("fetchedAt must be the supplied clock, got %v", result.FetchedAt)
	}
}

func TestNormalizeSessionsRepeatedMovieID(t *testing.T) {
	payload := `{"movies": [
		{"id": "A", "title": "Primeira", "sessionTypes": [{"sessions": [{"id": "a1", "time": "14:00"}]}]},
		{"id": "A", "title": "Segunda", "sessionTypes": [{"sessions": [{"id": "a2", "time": "16:00"}]}]}
	]}`

	result := NormalizeSessions(sessionsPayload(t, payload), time.Now())
	if len(result.Movies) != 1 {
		t.Fatalf("repeated id must store one record, got %d", len(result.Movies))
	}
	if result.Movies["A"].Title != "Primeira" {
		t.Fatalf("first occurrence must win, got %q", result.Movies["A"].Title)
	}
	if len(result.Sessions) != 2 {
		t.Fatalf("sessions from every occurrence must survive, got %d", len(result.Sessions))
	}
}

func TestNormalizeSessionsMissingMovies(t *testing.T) {
	now := time.Now()
	result := NormalizeSessions(sessionsPayload(t, `{"date": "2026-03-10"}`), now)

	if len(result.Movies) != 0 || len(result.Sessions) != 0 {
		t.Fatalf("payload without movies must normalize empty: %+v", result)
	}
	if result.Movies == nil || result.Sessions == nil {
		t.Fatalf("empty result must still carry non-nil collections")
	}
	if !result.FetchedAt.Equal(now) {
		t.Fatalf("fetchedAt lost on empty result")
	}
}

func TestNormalizeSessionsArrayWrappedPayload(t *testing.T) {
	wrapped := "[" + twoMoviePayload + "]"
	result := NormalizeSessions(sessionsPayload(t, wrapped), time.Now())
	if len(result.Movies) != 2 || len(result.Sessions) != 6 {
		t.Fatalf("singleton-array payload must normalize like the bare object: %d movies, %d sessions",
			len(result.Movies), len(result.Sessions))
	}
}

func TestNormalizeComingSoon(t *testing.T) {
	raw := []ingresso.ComingSoonMovie{
		{
			ID: "u1", Title: "Em Breve", PremiereDate: "2026-04-01",
			Images: []ingresso.Image{
				{Type: "PosterHorizontal", URL: "https://img/h.jpg"},
				{Type: "PosterPortrait", URL: "https://img/p.jpg"},
			},
		},
		{ID: "u2", Title: "Sem Imagem"},
	}

	items := NormalizeComingSoon(raw)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Poster != "https://img/p.jpg" {
		t.Fatalf("poster selection failed: %q", items[0].Poster)
	}
	if items[1].Poster != "" {
		t.Fatalf("missing poster should stay empty")
	}
}
