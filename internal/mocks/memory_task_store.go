package mocks

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
)

var errDeleteRejected = errors.New("delete rejected")

type memoryRecord struct {
	task  domain.Task
	title *string
	seq   int
}

// MemoryTaskStore is an in-memory implementation of store.TaskStore.
// It assigns sequential identifiers and strictly increasing creation times.
// FailWith, when set, is returned wrapped in a store.StoreError by every call.
// FailDeleteOf names a record whose deletion fails, leaving it in place.
type MemoryTaskStore struct {
	mu      sync.Mutex
	records map[string]memoryRecord
	nextSeq int
	now     func() time.Time

	FailWith     error
	FailDeleteOf string
}

var _ store.TaskStore = (*MemoryTaskStore)(nil)

// NewMemoryTaskStore creates an empty MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		records: make(map[string]memoryRecord),
		now:     time.Now,
	}
}

// PutUntitled inserts a record without a title, as a foreign writer could.
func (m *MemoryTaskStore) PutUntitled() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.newRecordLocked(nil)
	return rec.task.ID
}

func (m *MemoryTaskStore) newRecordLocked(title *string) memoryRecord {
	m.nextSeq++
	rec := memoryRecord{
		task: domain.Task{
			ID:        "task-" + strconv.Itoa(m.nextSeq),
			CreatedAt: m.now().Add(time.Duration(m.nextSeq) * time.Microsecond),
		},
		title: title,
		seq:   m.nextSeq,
	}
	if title != nil {
		rec.task.Title = *title
	}
	m.records[rec.task.ID] = rec
	return rec
}

func (m *MemoryTaskStore) fail(operation string) error {
	if m.FailWith == nil {
		return nil
	}
	return store.NewStoreError("task", operation, "memory store failure", m.FailWith)
}

// sortedLocked returns records in insertion order.
func (m *MemoryTaskStore) sortedLocked() []memoryRecord {
	recs := make([]memoryRecord, 0, len(m.records))
	for _, rec := range m.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	return recs
}

// Create implements store.TaskStore.Create
func (m *MemoryTaskStore) Create(ctx context.Context, title string) (*domain.Task, error) {
	if err := m.fail("create"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.newRecordLocked(&title)
	task := rec.task
	return &task, nil
}

// GetAll implements store.TaskStore.GetAll
func (m *MemoryTaskStore) GetAll(ctx context.Context) ([]domain.Task, error) {
	if err := m.fail("get_all"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]domain.Task, 0, len(m.records))
	for _, rec := range m.sortedLocked() {
		tasks = append(tasks, rec.task)
	}
	return tasks, nil
}

// FindByID implements store.TaskStore.FindByID
func (m *MemoryTaskStore) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	if err := m.fail("find_by_id"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	task := rec.task
	return &task, nil
}

// DeleteByID implements store.TaskStore.DeleteByID
func (m *MemoryTaskStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	if err := m.fail("delete_by_id"); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return false, nil
	}
	if err := m.deleteLocked("delete_by_id", id); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryTaskStore) deleteLocked(operation, id string) error {
	if m.FailDeleteOf != "" && id == m.FailDeleteOf {
		return store.NewStoreError("task", operation, "memory store delete failure", errDeleteRejected)
	}
	delete(m.records, id)
	return nil
}

// SearchByTitle implements store.TaskStore.SearchByTitle
func (m *MemoryTaskStore) SearchByTitle(ctx context.Context, term string) ([]domain.Task, error) {
	if err := m.fail("search_by_title"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]domain.Task, 0)
	for _, rec := range m.sortedLocked() {
		if store.TitleMatches(rec.title, term) {
			tasks = append(tasks, rec.task)
		}
	}
	return tasks, nil
}

// TopN implements store.TaskStore.TopN
func (m *MemoryTaskStore) TopN(ctx context.Context, n int) ([]domain.Task, error) {
	if err := m.fail("top_n"); err != nil {
		return nil, err
	}
	if n <= 0 {
		return []domain.Task{}, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	recs := m.sortedLocked()
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].task.CreatedAt.After(recs[j].task.CreatedAt)
	})
	if n < len(recs) {
		recs = recs[:n]
	}

	tasks := make([]domain.Task, 0, len(recs))
	for _, rec := range recs {
		tasks = append(tasks, rec.task)
	}
	return tasks, nil
}

// DeleteAll implements store.TaskStore.DeleteAll.
// Records are removed one at a time in insertion order; the first failure
// stops the reset and leaves the remaining records in place.
func (m *MemoryTaskStore) DeleteAll(ctx context.Context) error {
	if err := m.fail("delete_all"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.sortedLocked() {
		if err := m.deleteLocked("delete_all", rec.task.ID); err != nil {
			return err
		}
	}
	return nil
}
