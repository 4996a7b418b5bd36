package services

import (
	"context"
	"sync"
	"time"

	"game-score-service/models"
	"game-score-service/store"
)

// FakeStore wraps a MemoryStore and lets a test override individual calls.
type FakeStore struct {
	*store.MemoryStore

	mu    sync.Mutex
	trace []string

	CodeExistsFunc         func(ctx context.Context, code string) (bool, error)
	InsertCodeFunc         func(ctx context.Context, code *models.Code) error
	DecrementAvailableFunc func(ctx context.Context, code string) error
	PutRedemptionFunc      func(ctx context.Context, r *models.Redemption) error
	PutScoreEventFunc      func(ctx context.Context, e *models.ScoreEvent) error
	GetCodeFunc            func(ctx context.Context, code string) (*models.Code, error)
}

func NewFakeStore() *FakeStore {
	return &FakeStore{MemoryStore: store.NewMemoryStore()}
}

// Trace returns the overridden calls made, in order.
func (f *FakeStore) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeStore) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeStore) CodeExists(ctx context.Context, code string) (bool, error) {
	f.record("CodeExists")
	if f.CodeExistsFunc != nil {
		return f.CodeExistsFunc(ctx, code)
	}
	return f.MemoryStore.CodeExists(ctx, code)
}

func (f *FakeStore) InsertCode(ctx context.Context, code *models.Code) error {
	f.record("InsertCode")
	if f.InsertCodeFunc != nil {
		return f.InsertCodeFunc(ctx, code)
	}
	return f.MemoryStore.InsertCode(ctx, code)
}

func (f *FakeStore) GetCode(ctx context.Context, code string) (*models.Code, error) {
	f.record("GetCode")
	if f.GetCodeFunc != nil {
		return f.GetCodeFunc(ctx, code)
	}
	return f.MemoryStore.GetCode(ctx, code)
}

func (f *FakeStore) DecrementAvailable(ctx context.Context, code string) error {
	f.record("DecrementAvailable")
	if f.DecrementAvailableFunc != nil {
		return f.DecrementAvailableFunc(ctx, code)
	}
	return f.MemoryStore.DecrementAvailable(ctx, code)
}

func (f *FakeStore) PutRedemption(ctx context.Context, r *models.Redemption) error {
	f.record("PutRedemption")
	if f.PutRedemptionFunc != nil {
		return f.PutRedemptionFunc(ctx, r)
	}
	return f.MemoryStore.PutRedemption(ctx, r)
}

// PutScoreEvent is called from several goroutines; it is not traced.
func (f *FakeStore) PutScoreEvent(ctx context.Context, e *models.ScoreEvent) error {
	if f.PutScoreEventFunc != nil {
		return f.PutScoreEventFunc(ctx, e)
	}
	return f.MemoryStore.PutScoreEvent(ctx, e)
}

var _ store.Store = (*FakeStore)(nil)

// fixedClock returns a Now func pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// scriptedIntN replays values in order, then repeats the last one.
func scriptedIntN(values ...int) func(int) int {
	i := 0
	return func(int) int {
		v := values[min(i, len(values)-1)]
		i++
		return v
	}
}
