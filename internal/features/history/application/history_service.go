package application

import (
	"context"
	"encoding/json"
	"fmt"

	"json-prompt-generator/backend/internal/features/history/domain"
	normalization "json-prompt-generator/backend/internal/features/normalization/domain"
)

// Store is the persistence used by HistoryService.
type Store interface {
	Create(ctx context.Context, entry domain.Entry) (domain.Entry, error)
	List(ctx context.Context, offset, limit int) ([]domain.Entry, int, error)
}

// HistoryService records conversions and pages through them.
type HistoryService interface {
	Record(ctx context.Context, originalText string, result *normalization.Result) error
	List(ctx context.Context, page, pageSize int) (domain.Page, error)
}

const maxPage = 1_000_000

type historyService struct {
	store Store
}

func NewHistoryService(store Store) HistoryService {
	return &historyService{store: store}
}

func (s *historyService) Record(ctx context.Context, originalText string, result *normalization.Result) error {
	prompt, err := json.Marshal(result.Prompt)
	if err != nil {
		return fmt.Errorf("failed to marshal prompt for history: %w", err)
	}
	_, err = s.store.Create(ctx, domain.Entry{
		OriginalText: originalText,
		JSONPrompt:   prompt,
		Path:         string(result.Path),
		Status:       result.Status,
	})
	if err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

func (s *historyService) List(ctx context.Context, page, pageSize int) (domain.Page, error) {
	if page < 1 {
		page = 1
	}
	// Bounds the offset; pages past the end are clamped below anyway.
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize
	entries, total, err := s.store.List(ctx, offset, pageSize)
	if err != nil {
		return domain.Page{}, err
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		page = pages
		offset = (page - 1) * pageSize
		entries, _, err = s.store.List(ctx, offset, pageSize)
		if err != nil {
			return domain.Page{}, err
		}
	}
	return domain.Page{Entries: entries, Page: page, Pages: pages, Total: total}, nil
}
