package ingresso

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cinesystem/cinebot/internal/domain"
)

const (
	defaultBaseURL = "https://api-content.ingresso.com"
	defaultTimeout = 30 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client talks to the Ingresso.com content API for a single city
type Client struct {
	baseURL    string
	cityID     int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog client. An empty baseURL uses the production
// API host.
func NewClient(baseURL string, cityID int, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		cityID:  cityID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs a GET against the content API and returns the body
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("ingresso request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("ingresso request failed", "error", err)
		return nil, domain.ErrCatalogOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("ingresso request error", "status", resp.StatusCode, "url", reqURL)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// Events lists the events currently playing at a theater
func (c *Client) Events(ctx context.Context, theaterID string) ([]Event, error) {
	path := fmt.Sprintf("/v0/sessions/city/%d/theater/%s", c.cityID, theaterID)
	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("%w: expected array of events", domain.ErrUnexpectedPayload)
	}
	return events, nil
}

// EventSessions fetches one event's sessions grouped by session type for a
// date. The response mixes every cinema in the city; groups tagged with a
// cinema other than theaterID are pruned here so downstream code only sees
// the theater it asked about.
func (c *Client) EventSessions(ctx context.Context, eventID, date, theaterID string) (SessionsResponse, error) {
	path := fmt.Sprintf("/v0/sessions/city/%d/event/%s/partnership/home/groupBy/sessionType", c.cityID, eventID)
	query := url.Values{"date": {date}}

	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return SessionsResponse{}, err
	}

	var resp SessionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return SessionsResponse{}, err
	}

	pruneForeignCinemas(&resp, theaterID)
	return resp, nil
}

// TheaterSessions fetches the whole theater's sessions for a date in one call
func (c *Client) TheaterSessions(ctx context.Context, theaterID, date string) (SessionsResponse, error) {
	path := fmt.Sprintf("/v0/sessions/city/%d/theater/%s/partnership/home/groupBy/sessionType", c.cityID, theaterID)
	query := url.Values{"date": {date}}

	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return SessionsResponse{}, err
	}

	var resp SessionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return SessionsResponse{}, err
	}
	return resp, nil
}

// ComingSoon lists the city's upcoming releases
func (c *Client) ComingSoon(ctx context.Context) ([]ComingSoonMovie, error) {
	path := fmt.Sprintf("/v0/events/coming-soon/city/%d/partnership/home", c.cityID)
	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var movies []ComingSoonMovie
	if err := json.Unmarshal(body, &movies); err != nil {
		return nil, fmt.Errorf("%w: expected array of upcoming movies", domain.ErrUnexpectedPayload)
	}
	return movies, nil
}

func pruneForeignCinemas(resp *SessionsResponse, theaterID string) {
	for i := range resp.Movies {
		groups := resp.Movies[i].SessionTypes[:0]
		for _, g := range resp.Movies[i].SessionTypes {
			if g.CinemaID == "" || g.CinemaID.String() == theaterID {
				groups = append(groups, g)
			}
		}
		resp.Movies[i].SessionTypes = groups
	}
}
