package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/example/jobtrack/internal/core/failure"
	"github.com/example/jobtrack/internal/core/ingest"
	"github.com/example/jobtrack/internal/core/posting"
	"github.com/example/jobtrack/internal/core/settings"
	"github.com/example/jobtrack/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockStagingRepository implements secondary.StagingRepository for testing.
type mockStagingRepository struct {
	staged    map[int64]*secondary.StagedPostingRecord
	nextID    int64
	ingestErr error
	listErr   error
}

func newMockStagingRepository() *mockStagingRepository {
	return &mockStagingRepository{
		staged: make(map[int64]*secondary.StagedPostingRecord),
		nextID: 1,
	}
}

func (m *mockStagingRepository) IngestMany(ctx context.Context, candidates []ingest.Candidate) (int, int, error) {
	if m.ingestErr != nil {
		return 0, 0, m.ingestErr
	}
	inserted := 0
	for _, c := range candidates {
		if c.Link == "" || m.hasLink(c.Link) {
			continue
		}
		m.staged[m.nextID] = &secondary.StagedPostingRecord{
			ID:         m.nextID,
			Company:    c.Company,
			Position:   c.Position,
			Location:   c.Location,
			Link:       c.Link,
			DatePosted: c.DatePosted,
		}
		m.nextID++
		inserted++
	}
	return len(candidates), inserted, nil
}

func (m *mockStagingRepository) hasLink(link string) bool {
	for _, s := range m.staged {
		if s.Link == link {
			return true
		}
	}
	return false
}

func (m *mockStagingRepository) List(ctx context.Context) ([]*secondary.StagedPostingRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.StagedPostingRecord
	for _, s := range m.staged {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DatePosted == result[j].DatePosted {
			return result[i].ID < result[j].ID
		}
		return result[i].DatePosted < result[j].DatePosted
	})
	return result, nil
}

func (m *mockStagingRepository) GetByID(ctx context.Context, id int64) (*secondary.StagedPostingRecord, error) {
	if s, ok := m.staged[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("staged posting %d: %w", id, failure.ErrNotFound)
}

func (m *mockStagingRepository) Clear(ctx context.Context) (int, error) {
	n := len(m.staged)
	m.staged = make(map[int64]*secondary.StagedPostingRecord)
	return n, nil
}

func (m *mockStagingRepository) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	for id := range m.staged {
		if id > maxID {
			maxID = id
		}
	}
	return maxID, nil
}

// mockPostingRepository implements secondary.PostingRepository for testing.
// Ids come from a running counter like the AUTOINCREMENT sequence.
type mockPostingRepository struct {
	postings    map[int64]*secondary.PostingRecord
	counter     int64
	staging     *mockStagingRepository
	getCalls    int
	updateCalls int
	createErr   error
	maxIDErr    error
}

func newMockPostingRepository(staging *mockStagingRepository) *mockPostingRepository {
	return &mockPostingRepository{
		postings: make(map[int64]*secondary.PostingRecord),
		staging:  staging,
	}
}

func (m *mockPostingRepository) linkStored(link string) bool {
	for _, p := range m.postings {
		if p.Link == link {
			return true
		}
	}
	return false
}

func (m *mockPostingRepository) Create(ctx context.Context, record *secondary.PostingRecord) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	if m.linkStored(record.Link) {
		return 0, fmt.Errorf("failed to create posting: %w", failure.ErrDuplicateLink)
	}
	m.counter++
	stored := *record
	stored.ID = m.counter
	if stored.Status == "" {
		stored.Status = string(posting.InitialStatus())
	}
	m.postings[stored.ID] = &stored
	return stored.ID, nil
}

func (m *mockPostingRepository) Promote(ctx context.Context, stagingID int64, lastUpdate string) (int64, error) {
	maxStaged, _ := m.staging.MaxID(ctx)
	guardCtx := posting.PromoteContext{StagingID: stagingID, MaxStagingID: maxStaged}

	staged, ok := m.staging.staged[stagingID]
	if ok && stagingID <= maxStaged {
		guardCtx.StagingExists = true
		guardCtx.LinkStored = m.linkStored(staged.Link)
	}
	if result := posting.CanPromote(guardCtx); !result.Allowed {
		return 0, result.Error()
	}

	return m.Create(ctx, &secondary.PostingRecord{
		Company:    staged.Company,
		Position:   staged.Position,
		Location:   staged.Location,
		Link:       staged.Link,
		DatePosted: staged.DatePosted,
		LastUpdate: lastUpdate,
		StagedID:   stagingID,
	})
}

func (m *mockPostingRepository) GetByID(ctx context.Context, id int64) (*secondary.PostingRecord, error) {
	m.getCalls++
	if p, ok := m.postings[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, fmt.Errorf("posting %d: %w", id, failure.ErrNotFound)
}

func (m *mockPostingRepository) List(ctx context.Context) ([]*secondary.PostingRecord, error) {
	var result []*secondary.PostingRecord
	for _, p := range m.postings {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DatePosted > result[j].DatePosted })
	return result, nil
}

func (m *mockPostingRepository) UpdateStatus(ctx context.Context, id int64, change posting.StatusChange) error {
	m.updateCalls++
	p, ok := m.postings[id]
	if !ok {
		return fmt.Errorf("no such posting %d: %w", id, failure.ErrNotFound)
	}
	p.Status = string(change.NewStatus)
	p.LastUpdate = change.LastUpdate
	return nil
}

func (m *mockPostingRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.postings[id]; !ok {
		return fmt.Errorf("posting %d: %w", id, failure.ErrNotFound)
	}
	delete(m.postings, id)
	return nil
}

func (m *mockPostingRepository) MaxID(ctx context.Context) (int64, error) {
	if m.maxIDErr != nil {
		return 0, m.maxIDErr
	}
	var maxID int64
	for id := range m.postings {
		if id > maxID {
			maxID = id
		}
	}
	return maxID, nil
}

// mockSettingsRepository implements secondary.SettingsRepository for testing.
type mockSettingsRepository struct {
	current   settings.Settings
	getErr    error
	updateErr error
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{current: settings.Default()}
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	copied := m.current
	return &copied, nil
}

func (m *mockSettingsRepository) UpdateField(ctx context.Context, value settings.Value) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.current = m.current.Apply(value)
	return nil
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	entries []string
	err     error
}

func (m *mockLogWriter) LogCreate(ctx context.Context, postingID int64) error {
	m.entries = append(m.entries, fmt.Sprintf("create %d", postingID))
	return m.err
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, postingID int64, fieldName, oldValue, newValue string) error {
	m.entries = append(m.entries, fmt.Sprintf("update %d %s %s->%s", postingID, fieldName, oldValue, newValue))
	return m.err
}

func (m *mockLogWriter) LogDelete(ctx context.Context, postingID int64) error {
	m.entries = append(m.entries, fmt.Sprintf("delete %d", postingID))
	return m.err
}

// mockHistoryRepository implements secondary.HistoryRepository for testing.
type mockHistoryRepository struct {
	records []*secondary.HistoryRecord
}

func (m *mockHistoryRepository) Create(ctx context.Context, record *secondary.HistoryRecord) error {
	record.ID = int64(len(m.records) + 1)
	m.records = append(m.records, record)
	return nil
}

func (m *mockHistoryRepository) ListByPosting(ctx context.Context, postingID int64) ([]*secondary.HistoryRecord, error) {
	var result []*secondary.HistoryRecord
	for _, r := range m.records {
		if r.PostingID == postingID {
			result = append(result, r)
		}
	}
	return result, nil
}

// mockPostingSource implements secondary.PostingSource for testing.
type mockPostingSource struct {
	raws       []ingest.Raw
	err        error
	lastParams settings.Settings
	calls      int
}

func (m *mockPostingSource) Fetch(ctx context.Context, params settings.Settings) ([]ingest.Raw, error) {
	m.calls++
	m.lastParams = params
	if m.err != nil {
		return nil, m.err
	}
	return m.raws, nil
}

// ============================================================================
// Test Helpers
// ============================================================================

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServices struct {
	staging   *StagingServiceImpl
	postings  *PostingServiceImpl
	promotion *PromotionServiceImpl
	settings  *SettingsServiceImpl
	scrape    *ScrapeServiceImpl

	stagingRepo  *mockStagingRepository
	postingRepo  *mockPostingRepository
	settingsRepo *mockSettingsRepository
	logWriter    *mockLogWriter
	source       *mockPostingSource
}

func newTestServices() *testServices {
	stagingRepo := newMockStagingRepository()
	postingRepo := newMockPostingRepository(stagingRepo)
	settingsRepo := newMockSettingsRepository()
	logWriter := &mockLogWriter{}
	source := &mockPostingSource{}
	logger := discardLogger()

	return &testServices{
		staging:      NewStagingService(stagingRepo),
		postings:     NewPostingService(postingRepo, logWriter, logger, fixedClock),
		promotion:    NewPromotionService(postingRepo, logWriter, logger, fixedClock),
		settings:     NewSettingsService(settingsRepo),
		scrape:       NewScrapeService(settingsRepo, stagingRepo, source, logger),
		stagingRepo:  stagingRepo,
		postingRepo:  postingRepo,
		settingsRepo: settingsRepo,
		logWriter:    logWriter,
		source:       source,
	}
}

func stageLinks(t testing.TB, svc *testServices, links ...string) {
	t.Helper()
	candidates := make([]ingest.Candidate, len(links))
	for i, l := range links {
		candidates[i] = ingest.Candidate{Company: "Co " + l, Position: "Intern", Link: l, DatePosted: "2026-10-01"}
	}
	if _, _, err := svc.stagingRepo.IngestMany(context.Background(), candidates); err != nil {
		t.Fatalf("stage links: %v", err)
	}
}
