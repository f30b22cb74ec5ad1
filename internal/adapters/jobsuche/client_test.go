package jobsuche

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/jobtrack/internal/core/ingest"
	"github.com/example/jobtrack/internal/core/settings"
)

const sampleResponse = `{
  "stellenangebote": [
    {
      "refnr": "10000-1199999999-S",
      "arbeitgeber": "Nordwind GmbH",
      "titel": "Werkstudent Softwareentwicklung",
      "beruf": "Softwareentwickler/in",
      "arbeitsort": {"ort": "Kiel", "plz": "24103"},
      "aktuelleVeroeffentlichungsdatum": "2026-10-14"
    },
    {
      "refnr": "10000-1188888888-S",
      "arbeitgeber": "Hafenlogik AG",
      "beruf": "Informatiker/in",
      "arbeitsort": {"ort": "Rendsburg"},
      "externeUrl": "https://hafenlogik.example/karriere/42",
      "aktuelleVeroeffentlichungsdatum": "2026-10-12"
    }
  ],
  "maxErgebnisse": 2
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	c := New(Config{BaseURL: srv.URL, RequestsPerSecond: 100, Timeout: 5 * time.Second})
	t.Cleanup(func() {
		c.hc.CloseIdleConnections()
		srv.Close()
	})
	return c
}

func TestFetch_SendsSearchParameters(t *testing.T) {
	var gotPath, gotKey string
	var gotQuery map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"stellenangebote": []}`))
	})

	params := settings.Settings{Search: "Werkstudent Software", Region: "Kiel", Radius: 50, Amount: 30}
	if _, err := c.Fetch(context.Background(), params); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotPath != "/pc/v4/jobs" {
		t.Errorf("expected path /pc/v4/jobs, got %q", gotPath)
	}
	if gotKey != DefaultAPIKey {
		t.Errorf("expected api key %q, got %q", DefaultAPIKey, gotKey)
	}

	want := map[string]string{
		"was":        "Werkstudent Software",
		"wo":         "Kiel",
		"umkreis":    "50",
		"page":       "1",
		"size":       "30",
		"sortierung": "datum",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s: expected %q, got %q", k, v, gotQuery[k])
		}
	}
	// internships and apprenticeships are offer types of their own
	if _, ok := gotQuery["angebotsart"]; ok {
		t.Errorf("expected no offer type filter, got %q", gotQuery["angebotsart"])
	}
}

func TestFetch_MapsPostings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleResponse))
	})

	raws, err := c.Fetch(context.Background(), settings.Default())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(raws) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(raws))
	}

	first := ingest.Normalize(raws[0])
	if first.Company != "Nordwind GmbH" || first.Position != "Werkstudent Softwareentwicklung" || first.Location != "Kiel" {
		t.Errorf("unexpected first candidate %+v", first)
	}
	if first.Link != ingest.DetailURLPrefix+"10000-1199999999-S" {
		t.Errorf("expected detail page link, got %q", first.Link)
	}

	second := ingest.Normalize(raws[1])
	if second.Position != "Informatiker/in" {
		t.Errorf("expected occupation fallback, got %q", second.Position)
	}
	if second.Link != "https://hafenlogik.example/karriere/42" {
		t.Errorf("expected external link, got %q", second.Link)
	}
	if second.DatePosted != "2026-10-12" {
		t.Errorf("unexpected date %q", second.DatePosted)
	}
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode int
	}{
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, wantCode: 403},
		{name: "server error", status: http.StatusBadGateway, body: `bad gateway`, wantCode: 502},
		{name: "malformed body", status: http.StatusOK, body: `{"stellenangebote": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			raws, err := c.Fetch(context.Background(), settings.Default())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if raws != nil {
				t.Errorf("expected no postings, got %d", len(raws))
			}

			var statusErr *StatusError
			if tt.wantCode != 0 {
				if !errors.As(err, &statusErr) || statusErr.Code != tt.wantCode {
					t.Errorf("expected status %d, got %v", tt.wantCode, err)
				}
			} else if errors.As(err, &statusErr) {
				t.Errorf("expected decode error, got %v", err)
			}
		})
	}
}

func TestFetch_CanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleResponse))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Fetch(ctx, settings.Default()); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})
	if c.baseURL != DefaultBaseURL {
		t.Errorf("expected default base url, got %q", c.baseURL)
	}
	if c.apiKey != DefaultAPIKey {
		t.Errorf("expected default key, got %q", c.apiKey)
	}
	if c.hc.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout, got %v", c.hc.Timeout)
	}
}
