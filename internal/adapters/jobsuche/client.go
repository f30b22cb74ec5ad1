// Package jobsuche implements the PostingSource port against the
// Bundesagentur für Arbeit job search REST API.
package jobsuche

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/example/jobtrack/internal/core/ingest"
	"github.com/example/jobtrack/internal/core/settings"
	"github.com/example/jobtrack/internal/ports/secondary"
)

const (
	DefaultBaseURL           = "https://rest.arbeitsagentur.de/jobboerse/jobsuche-service"
	DefaultAPIKey            = "jobboerse-jobsuche"
	DefaultTimeout           = 20 * time.Second
	DefaultRequestsPerSecond = 2.0

	jobsPath = "/pc/v4/jobs"
)

// Config holds the client settings.
type Config struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client fetches postings from the job search API.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
	limiter *rate.Limiter
}

// New creates a Client. Zero config values fall back to the defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIKey == "" {
		cfg.APIKey = DefaultAPIKey
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

type searchResponse struct {
	Stellenangebote []stellenangebot `json:"stellenangebote"`
}

type stellenangebot struct {
	RefNr       string `json:"refnr"`
	Arbeitgeber string `json:"arbeitgeber"`
	Titel       string `json:"titel"`
	Beruf       string `json:"beruf"`
	Arbeitsort  struct {
		Ort string `json:"ort"`
	} `json:"arbeitsort"`
	ExterneURL                      string `json:"externeUrl"`
	AktuelleVeroeffentlichungsdatum string `json:"aktuelleVeroeffentlichungsdatum"`
}

// Fetch runs one search with the given settings.
func (c *Client) Fetch(ctx context.Context, params settings.Settings) ([]ingest.Raw, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(params), nil)
	if err != nil {
		return nil, fmt.Errorf("jobsuche request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "jobtrack/1.0 (+local)")

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("jobsuche rate limit: %w", err)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jobsuche get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Code: res.StatusCode}
	}

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("jobsuche decode: %w", err)
	}

	out := make([]ingest.Raw, 0, len(body.Stellenangebote))
	for _, s := range body.Stellenangebote {
		out = append(out, ingest.Raw{
			RefNr:       s.RefNr,
			Company:     s.Arbeitgeber,
			Title:       s.Titel,
			Occupation:  s.Beruf,
			Location:    s.Arbeitsort.Ort,
			ExternalURL: s.ExterneURL,
			Published:   s.AktuelleVeroeffentlichungsdatum,
		})
	}
	return out, nil
}

func (c *Client) searchURL(params settings.Settings) string {
	q := url.Values{}
	q.Set("was", params.Search)
	q.Set("wo", params.Region)
	q.Set("umkreis", strconv.Itoa(params.Radius))
	q.Set("page", "1")
	q.Set("size", strconv.Itoa(params.Amount))
	q.Set("sortierung", "datum")
	return c.baseURL + jobsPath + "?" + q.Encode()
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jobsuche status %d", e.Code)
}

var _ secondary.PostingSource = (*Client)(nil)
