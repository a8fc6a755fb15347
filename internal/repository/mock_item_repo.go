package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

// MockItemRepository is a hand-written, in-memory implementation of
// ItemRepository used in unit tests. It reproduces the conditional
// update semantics of the pgx implementation, so lost-race paths can be
// exercised without a database. No mock-generation library needed.
type MockItemRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Item

	// Optional error overrides — set in tests to simulate failure paths.
	GetByIDErr       error
	ListScheduledErr error
	PublishNowErr    error
	RescheduleErr    error
}

func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{items: make(map[string]*domain.Item)}
}

// Put seeds an item, cloning it so the caller's copy stays detached.
func (m *MockItemRepository) Put(it domain.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := it
	m.items[it.ID] = &clone
}

func (m *MockItemRepository) GetByID(_ context.Context, id string) (*domain.Item, error) {
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *it
	return &clone, nil
}

func (m *MockItemRepository) ListScheduled(_ context.Context, limit int) ([]domain.Item, error) {
	if m.ListScheduledErr != nil {
		return nil, m.ListScheduledErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []domain.Item
	for _, it := range m.items {
		if it.Status == domain.StatusScheduled {
			result = append(result, *it)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ScheduledAt.Before(result[j].ScheduledAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockItemRepository) PublishNow(_ context.Context, id string, expectedAt, publishAt time.Time) error {
	if m.PublishNowErr != nil {
		return m.PublishNowErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[id]
	if !ok || it.Status != domain.StatusScheduled || !it.ScheduledAt.Equal(expectedAt) {
		return domain.ErrConflict
	}
	it.Status = domain.StatusPublished
	it.ScheduledAt = publishAt
	it.UpdatedAt = publishAt
	return nil
}

func (m *MockItemRepository) Reschedule(_ context.Context, id string, expectedAt, newAt time.Time) error {
	if m.RescheduleErr != nil {
		return m.RescheduleErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[id]
	if !ok || it.Status != domain.StatusScheduled || !it.ScheduledAt.Equal(expectedAt) {
		return domain.ErrConflict
	}
	it.ScheduledAt = newAt
	return nil
}

// MockCronRepository serves a fixed cron snapshot in tests.
type MockCronRepository struct {
	Events  []domain.CronEvent
	ListErr error
}

func (m *MockCronRepository) ListEvents(_ context.Context) ([]domain.CronEvent, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Events, nil
}
