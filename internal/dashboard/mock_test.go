package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/trogers1052/stock-dashboard/internal/models"
)

// MockCollection implements Collection in memory for testing
type MockCollection struct {
	mu      sync.Mutex
	records []models.StockRecord
	nextID  int

	// Canned failures, keyed by operation name
	failures map[string]error
	// When set, ListAll takes its snapshot, signals listStarted and
	// waits for listGate before returning
	listStarted chan struct{}
	listGate    chan struct{}
	// The same for GetByID
	getStarted chan struct{}
	getGate    chan struct{}

	// Track method calls for verification
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
	LastFields  models.StockFields
	LastExport  string
}

func NewMockCollection(records ...models.StockRecord) *MockCollection {
	return &MockCollection{
		records:  append([]models.StockRecord(nil), records...),
		nextID:   1000,
		failures: make(map[string]error),
	}
}

func (m *MockCollection) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

// HoldList makes the next ListAll calls block after taking their snapshot.
// Receive from started to know a snapshot was taken; close release to let
// them return.
func (m *MockCollection) HoldList() (started <-chan struct{}, release chan<- struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listStarted = make(chan struct{}, 1)
	m.listGate = make(chan struct{})
	return m.listStarted, m.listGate
}

func (m *MockCollection) ListAll(ctx context.Context) ([]models.StockRecord, error) {
	m.mu.Lock()
	if err := m.failures["list"]; err != nil {
		m.mu.Unlock()
		return nil, err
	}
	records := append([]models.StockRecord(nil), m.records...)
	started, gate := m.listStarted, m.listGate
	m.mu.Unlock()

	if gate != nil {
		started <- struct{}{}
		<-gate
	}
	return records, nil
}

// HoldGet is HoldList for GetByID
func (m *MockCollection) HoldGet() (started <-chan struct{}, release chan<- struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getStarted = make(chan struct{}, 1)
	m.getGate = make(chan struct{})
	return m.getStarted, m.getGate
}

func (m *MockCollection) GetByID(ctx context.Context, id string) (models.StockRecord, error) {
	m.mu.Lock()
	started, gate := m.getStarted, m.getGate
	m.mu.Unlock()
	if gate != nil {
		started <- struct{}{}
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["get"]; err != nil {
		return models.StockRecord{}, err
	}
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return models.StockRecord{}, fmt.Errorf("stock record not found: %s", id)
}

func (m *MockCollection) Create(ctx context.Context, fields models.StockFields) (models.StockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	m.LastFields = fields
	if err := m.failures["create"]; err != nil {
		return models.StockRecord{}, err
	}
	m.nextID++
	r := models.StockRecord{ID: fmt.Sprint(m.nextID), Date: "2020-01-01"}.WithFields(fields)
	m.records = append(m.records, r)
	return r, nil
}

func (m *MockCollection) Update(ctx context.Context, id string, fields models.StockFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	m.LastFields = fields
	if err := m.failures["update"]; err != nil {
		return err
	}
	for i, r := range m.records {
		if r.ID == id {
			m.records[i] = r.WithFields(fields)
			return nil
		}
	}
	return fmt.Errorf("stock record not found: %s", id)
}

func (m *MockCollection) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if err := m.failures["delete"]; err != nil {
		return err
	}
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockCollection) Export(ctx context.Context, path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastExport = path
	if err := m.failures["export"]; err != nil {
		return "", err
	}
	return "Exported to " + path, nil
}

// MockPublisher records published events
type MockPublisher struct {
	mu      sync.Mutex
	Created []models.StockRecord
	Updated []models.StockRecord
	Deleted []string
}

func (p *MockPublisher) PublishRecordCreated(ctx context.Context, record models.StockRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Created = append(p.Created, record)
	return nil
}

func (p *MockPublisher) PublishRecordUpdated(ctx context.Context, record models.StockRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Updated = append(p.Updated, record)
	return nil
}

func (p *MockPublisher) PublishRecordDeleted(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Deleted = append(p.Deleted, id)
	return nil
}

// makeRecords builds n records with ids "1".."n" cycling through codes
func makeRecords(n int, codes ...string) []models.StockRecord {
	if len(codes) == 0 {
		codes = []string{"ABC"}
	}
	records := make([]models.StockRecord, n)
	for i := range records {
		records[i] = models.StockRecord{
			ID:        fmt.Sprint(i + 1),
			Date:      fmt.Sprintf("2020-01-%02d", i%28+1),
			TradeCode: codes[i%len(codes)],
			Close:     fmt.Sprint(10 + i),
			Volume:    fmt.Sprint(1000 * (i + 1)),
		}
	}
	return records
}
