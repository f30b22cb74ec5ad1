package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures.
// Staged and durable postings share links so promotion conflicts are easy to reproduce.
func SeedFixtures(database *sql.DB) error {
	now := time.Now()
	day := func(offset int) string {
		return now.AddDate(0, 0, -offset).Format("2006-01-02")
	}

	staged := []struct{ company, position, location, link, date string }{
		{"Nordlicht Software GmbH", "Werkstudent Backend (m/w/d)", "Kiel", "https://jobs.example.org/nordlicht/1", day(6)},
		{"Foerde Data AG", "Praktikum Data Engineering", "Kiel", "https://jobs.example.org/foerde/7", day(4)},
		{"Hafenlogistik KG", "Softwareentwickler Go (m/w/d)", "Rendsburg", "https://www.arbeitsagentur.de/jobsuche/jobdetail/10000-1190000001-S", day(2)},
		{"Baltic Robotics", "Werkstudent Embedded", "Eckernfoerde", "https://jobs.example.org/baltic/3", day(1)},
	}
	for _, s := range staged {
		if _, err := database.Exec(
			"INSERT OR IGNORE INTO staged_postings (company_name, position, location, link, date_posted) VALUES (?, ?, ?, ?, ?)",
			s.company, s.position, s.location, s.link, s.date,
		); err != nil {
			return fmt.Errorf("seed staged postings: %w", err)
		}
	}

	durable := []struct{ company, position, location, link, date, status string }{
		{"Nordlicht Software GmbH", "Werkstudent Backend (m/w/d)", "Kiel", "https://jobs.example.org/nordlicht/1", day(6), "applied"},
		{"Kieler Stadtwerke", "Junior Entwickler", "Kiel", "https://jobs.example.org/stadtwerke/12", day(20), "interview"},
	}
	for _, d := range durable {
		if _, err := database.Exec(
			"INSERT OR IGNORE INTO postings (company_name, position, location, link, date_posted, status, last_update) VALUES (?, ?, ?, ?, ?, ?, ?)",
			d.company, d.position, d.location, d.link, d.date, d.status, day(0),
		); err != nil {
			return fmt.Errorf("seed postings: %w", err)
		}
	}

	return nil
}
