// Package ingest normalizes raw postings returned by the fetch collaborator
// into candidates for the staging store. Pure functions only.
package ingest

import (
	"strings"
	"time"

	"github.com/example/jobtrack/internal/core/posting"
)

// DetailURLPrefix is the public detail page used when a posting has no external link.
const DetailURLPrefix = "https://www.arbeitsagentur.de/jobsuche/jobdetail/"

// Raw is a posting as returned by the fetch collaborator. Any field may be empty.
type Raw struct {
	RefNr       string
	Company     string
	Title       string
	Occupation  string
	Location    string
	ExternalURL string
	Published   string
}

// Candidate is a normalized posting ready for staging.
type Candidate struct {
	Company    string
	Position   string
	Location   string
	Link       string
	DatePosted string
}

// Normalize maps a raw posting to a candidate.
// Rules:
// - position falls back to the occupation when the title is empty
// - link falls back to the detail page derived from the reference number
// - dates are reduced to YYYY-MM-DD when they parse, kept verbatim otherwise
func Normalize(r Raw) Candidate {
	position := strings.TrimSpace(r.Title)
	if position == "" {
		position = strings.TrimSpace(r.Occupation)
	}

	return Candidate{
		Company:    strings.TrimSpace(r.Company),
		Position:   position,
		Location:   strings.TrimSpace(r.Location),
		Link:       Link(r),
		DatePosted: NormalizeDate(r.Published),
	}
}

// Link returns the external URL, or the detail page for the reference number.
// Returns "" when neither is present.
func Link(r Raw) string {
	if u := strings.TrimSpace(r.ExternalURL); u != "" {
		return u
	}
	if ref := strings.TrimSpace(r.RefNr); ref != "" {
		return DetailURLPrefix + ref
	}
	return ""
}

// NormalizeDate reduces RFC 3339 timestamps and plain dates to YYYY-MM-DD.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{posting.DateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(posting.DateLayout)
		}
	}
	return s
}

// NormalizeAll maps a batch. Candidates keep the input order.
func NormalizeAll(raws []Raw) []Candidate {
	out := make([]Candidate, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r))
	}
	return out
}
