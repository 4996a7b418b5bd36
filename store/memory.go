package store

import (
	"context"
	"fmt"
	"sync"

	"game-score-service/models"
)

// MemoryStore keeps everything in process. Scans return records in insertion order.
type MemoryStore struct {
	mu          sync.Mutex
	codes       map[string]models.Code
	users       map[string]models.User
	userOrder   []string
	redemptions []models.Redemption
	events      []models.ScoreEvent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes: make(map[string]models.Code),
		users: make(map[string]models.User),
	}
}

func (m *MemoryStore) GetCode(_ context.Context, code string) (*models.Code, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.codes[code]
	if !ok {
		return nil, fmt.Errorf("code %q: %w", code, ErrNotFound)
	}
	return &c, nil
}

func (m *MemoryStore) CodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.codes[code]
	return ok, nil
}

func (m *MemoryStore) InsertCode(_ context.Context, code *models.Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.codes[code.Code]; ok {
		return fmt.Errorf("code %q: %w", code.Code, ErrAlreadyExists)
	}
	m.codes[code.Code] = *code
	return nil
}

func (m *MemoryStore) DecrementAvailable(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.codes[code]
	if !ok || c.Available <= 0 {
		return fmt.Errorf("decrement %q: %w", code, ErrConditionFailed)
	}
	c.Available--
	m.codes[code] = c
	return nil
}

func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Pseudo]; ok {
		return fmt.Errorf("user %q: %w", user.Pseudo, ErrAlreadyExists)
	}
	m.users[user.Pseudo] = *user
	m.userOrder = append(m.userOrder, user.Pseudo)
	return nil
}

func (m *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]models.User, 0, len(m.userOrder))
	for _, p := range m.userOrder {
		users = append(users, m.users[p])
	}
	return users, nil
}

func (m *MemoryStore) PutRedemption(_ context.Context, r *models.Redemption) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.redemptions = append(m.redemptions, *r)
	return nil
}

func (m *MemoryStore) ScanRedemptions(_ context.Context, minMillis, maxMillis int64) ([]models.Redemption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Redemption
	for _, r := range m.redemptions {
		if r.CreatedAt > minMillis && r.CreatedAt < maxMillis {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) PutScoreEvent(_ context.Context, e *models.ScoreEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, *e)
	return nil
}

func (m *MemoryStore) ScanScoreEvents(_ context.Context, minMillis, maxMillis int64) ([]models.ScoreEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.ScoreEvent
	for _, e := range m.events {
		if e.CreatedAt > minMillis && e.CreatedAt < maxMillis {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
