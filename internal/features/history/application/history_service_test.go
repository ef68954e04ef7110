package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"json-prompt-generator/backend/internal/features/history/domain"
	normalization "json-prompt-generator/backend/internal/features/normalization/domain"
)

// memoryStore keeps entries in insertion order and lists them newest first.
type memoryStore struct {
	entries []domain.Entry
	err     error
}

func (s *memoryStore) Create(_ context.Context, entry domain.Entry) (domain.Entry, error) {
	if s.err != nil {
		return domain.Entry{}, s.err
	}
	entry.ID = int64(len(s.entries) + 1)
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *memoryStore) List(_ context.Context, offset, limit int) ([]domain.Entry, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	var out []domain.Entry
	for i := len(s.entries) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, len(s.entries), nil
}

func seed(t *testing.T, svc HistoryService, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		prompt := normalization.NewStructuredPrompt()
		prompt.Set("task", fmt.Sprintf("t%d", i))
		prompt.Set("format", "markdown")
		require.NoError(t, svc.Record(context.Background(), fmt.Sprintf("request %d", i), &normalization.Result{
			Prompt: prompt,
			Path:   normalization.PathAI,
			Status: "generated by fake",
		}))
	}
}

func TestRecordStoresOrderedPrompt(t *testing.T) {
	store := &memoryStore{}
	svc := NewHistoryService(store)
	seed(t, svc, 1)

	require.Len(t, store.entries, 1)
	assert.Equal(t, `{"task":"t1","format":"markdown"}`, string(store.entries[0].JSONPrompt))
	assert.Equal(t, "ai", store.entries[0].Path)
	assert.Equal(t, "generated by fake", store.entries[0].Status)
}

func TestListPagination(t *testing.T) {
	svc := NewHistoryService(&memoryStore{})
	seed(t, svc, 25)

	tests := []struct {
		name     string
		page     int
		size     int
		wantPage int
		pages    int
		count    int
		first    string
	}{
		{"first page", 1, 10, 1, 3, 10, "request 25"},
		{"last page", 3, 10, 3, 3, 5, "request 5"},
		{"clamped past end", 9, 10, 3, 3, 5, "request 5"},
		{"page below one", 0, 10, 1, 3, 10, "request 25"},
		{"default size", 1, 0, 1, 3, 10, "request 25"},
		{"size capped", 1, 1000, 1, 1, 25, "request 25"},
		{"huge page", math.MaxInt, 10, 3, 3, 5, "request 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.List(context.Background(), tt.page, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.pages, page.Pages)
			assert.Equal(t, 25, page.Total)
			require.Len(t, page.Entries, tt.count)
			assert.Equal(t, tt.first, page.Entries[0].OriginalText)
		})
	}
}

func TestListEmpty(t *testing.T) {
	page, err := NewHistoryService(&memoryStore{}).List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pages)
	assert.Zero(t, page.Total)
}

func TestStoreErrors(t *testing.T) {
	svc := NewHistoryService(&memoryStore{err: errors.New("database is locked")})

	err := svc.Record(context.Background(), "x", &normalization.Result{Prompt: normalization.NewStructuredPrompt()})
	assert.ErrorContains(t, err, "database is locked")

	_, err = svc.List(context.Background(), 1, 10)
	assert.Error(t, err)
}

// offsetStore records the offset it is asked for.
type offsetStore struct {
	memoryStore
	offsets []int
}

func (s *offsetStore) List(ctx context.Context, offset, limit int) ([]domain.Entry, int, error) {
	s.offsets = append(s.offsets, offset)
	return s.memoryStore.List(ctx, offset, limit)
}

func TestListHugePageKeepsOffsetPositive(t *testing.T) {
	store := &offsetStore{}
	svc := NewHistoryService(store)
	seed(t, svc, 3)

	page, err := svc.List(context.Background(), math.MaxInt, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Entries, 3)
	for _, off := range store.offsets {
		assert.GreaterOrEqual(t, off, 0)
	}
}
