package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"game-score-service/models"
	"game-score-service/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainCode(code string) *models.Code {
	return &models.Code{Code: code}
}

func TestCodeGenerator_ProducesBase36Codes(t *testing.T) {
	gen := NewCodeGenerator(NewFakeStore(), 0)
	assert.Equal(t, DefaultMaxCodeAttempts, gen.MaxAttempts)

	for i := 0; i < 200; i++ {
		record, err := gen.Issue(context.Background(), plainCode)
		require.NoError(t, err)
		require.Len(t, record.Code, models.CodeLength)
		for _, r := range record.Code {
			assert.True(t, strings.ContainsRune(models.CodeAlphabet, r), "unexpected symbol %q in %q", r, record.Code)
		}
	}
}

func TestCodeGenerator_RetriesWholeDrawOnCollision(t *testing.T) {
	ctx := context.Background()
	fake := NewFakeStore()
	require.NoError(t, fake.MemoryStore.InsertCode(ctx, plainCode("0000")))

	gen := NewCodeGenerator(fake, 5)
	// First draw "0000" collides, second draw "1111" is free.
	gen.IntN = scriptedIntN(0, 0, 0, 0, 1)

	record, err := gen.Issue(ctx, plainCode)
	require.NoError(t, err)
	assert.Equal(t, "1111", record.Code)
	assert.Equal(t, []string{"CodeExists", "CodeExists", "InsertCode"}, fake.Trace())

	exists, err := fake.MemoryStore.CodeExists(ctx, "1111")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCodeGenerator_RedrawsWhenInsertLosesRace(t *testing.T) {
	ctx := context.Background()
	fake := NewFakeStore()
	inserts := 0
	fake.InsertCodeFunc = func(ctx context.Context, code *models.Code) error {
		inserts++
		if inserts == 1 {
			// Another writer claimed the code between lookup and insert.
			return store.ErrAlreadyExists
		}
		return fake.MemoryStore.InsertCode(ctx, code)
	}

	gen := NewCodeGenerator(fake, 5)
	gen.IntN = scriptedIntN(2, 2, 2, 2, 3)

	record, err := gen.Issue(ctx, plainCode)
	require.NoError(t, err)
	assert.Equal(t, "3333", record.Code)
	assert.Equal(t, []string{"CodeExists", "InsertCode", "CodeExists", "InsertCode"}, fake.Trace())
}

func TestCodeGenerator_NeverReturnsExistingCode(t *testing.T) {
	ctx := context.Background()
	gen := NewCodeGenerator(NewFakeStore(), 0)

	seen := make(map[string]bool)
	for i := 0; i < 300; i++ {
		record, err := gen.Issue(ctx, plainCode)
		require.NoError(t, err)
		require.False(t, seen[record.Code], "code %q returned twice", record.Code)
		seen[record.Code] = true
	}
}

func TestCodeGenerator_Failures(t *testing.T) {
	tests := []struct {
		name     string
		exists   func(ctx context.Context, code string) (bool, error)
		insert   func(ctx context.Context, code *models.Code) error
		wantKind Kind
	}{
		{
			name:     "every draw collides",
			exists:   func(context.Context, string) (bool, error) { return true, nil },
			wantKind: KindGenerationExhausted,
		},
		{
			name:     "every insert loses the race",
			insert:   func(context.Context, *models.Code) error { return store.ErrAlreadyExists },
			wantKind: KindGenerationExhausted,
		},
		{
			name:     "lookup fails",
			exists:   func(context.Context, string) (bool, error) { return false, errors.New("throttled") },
			wantKind: KindStoreFailure,
		},
		{
			name:     "insert fails",
			insert:   func(context.Context, *models.Code) error { return errors.New("table missing") },
			wantKind: KindStoreFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := NewFakeStore()
			fake.CodeExistsFunc = tt.exists
			fake.InsertCodeFunc = tt.insert
			gen := NewCodeGenerator(fake, 3)

			_, err := gen.Issue(context.Background(), plainCode)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}
