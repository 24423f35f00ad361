package ingresso

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinesystem/cinebot/internal/domain"
	"github.com/cinesystem/cinebot/internal/log"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 53, log.NullLogger())
}

func TestEvents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/sessions/city/53/theater/1162" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id": "e1", "title": "Filme Um"}, {"id": "e2", "title": "Filme Dois"}]`))
	})

	events, err := client.Events(context.Background(), "1162")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 || events[0].ID != "e1" || events[1].Title != "Filme Dois" {
		t.Fatalf("events decoded wrong: %+v", events)
	}
}

func TestEventsRejectsNonArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "maintenance"}`))
	})

	_, err := client.Events(context.Background(), "1162")
	if !errors.Is(err, domain.ErrUnexpectedPayload) {
		t.Fatalf("expected ErrUnexpectedPayload, got %v", err)
	}
}

func TestEventSessionsPrunesForeignCinemas(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "2026-03-10" {
			t.Errorf("date query not forwarded: %q", got)
		}
		w.Write([]byte(`{
			"date": "2026-03-10",
			"movies": [{
				"id": "A", "title": "Filme A",
				"sessionTypes": [
					{"cinemaId": 1162, "sessions": [{"id": "s1", "time": "14:00"}]},
					{"cinemaId": 99, "sessions": [{"id": "s2", "time": "15:00"}]},
					{"sessions": [{"id": "s3", "time": "16:00"}]}
				]
			}]
		}`))
	})

	resp, err := client.EventSessions(context.Background(), "A", "2026-03-10", "1162")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	groups := resp.Movies[0].SessionTypes
	if len(groups) != 2 {
		t.Fatalf("expected the foreign cinema pruned, got %d groups", len(groups))
	}
	if groups[0].Sessions[0].ID != "s1" || groups[1].Sessions[0].ID != "s3" {
		t.Fatalf("wrong groups survived: %+v", groups)
	}
}

func TestEventSessionsArrayWrappedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"date": "2026-03-10", "movies": []}]`))
	})

	resp, err := client.EventSessions(context.Background(), "A", "2026-03-10", "1162")
	if err != nil {
		t.Fatalf("wrapped body should decode: %v", err)
	}
	if resp.Date != "2026-03-10" {
		t.Fatalf("wrapped body decoded wrong: %+v", resp)
	}
}

func TestErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := client.TheaterSessions(context.Background(), "1162", "2026-03-10"); err == nil {
		t.Fatalf("expected error on 502")
	}
}

func TestUnreachableHostIsCatalogOffline(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 53, log.NullLogger())

	_, err := client.Events(context.Background(), "1162")
	if !errors.Is(err, domain.ErrCatalogOffline) {
		t.Fatalf("expected ErrCatalogOffline, got %v", err)
	}
}

func TestComingSoon(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/events/coming-soon/city/53/partnership/home" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id": "u1", "title": "Em Breve", "premiereDate": "2026-04-01"}]`))
	})

	movies, err := client.ComingSoon(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 1 || movies[0].PremiereDate != "2026-04-01" {
		t.Fatalf("coming soon decoded wrong: %+v", movies)
	}
}
