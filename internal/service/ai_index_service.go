package service

import (
	"context"
	"errors"
	"fmt"

	"saga-be/internal/dto"
	"saga-be/internal/pkg/serverutils"
	"saga-be/pkg/catalog"
)

const (
	bookSearchDefaultLimit = 20
	bookSearchMaxLimit     = 40
)

// UpdateIndex pushes the catalog to the semantic index. With async the job
// goes onto the in-process queue and only the pending count is reported.
func (s *aiService) UpdateIndex(ctx context.Context, auth serverutils.AuthContext, async bool) (*dto.UpdateIndexResponse, error) {
	if !auth.Authenticated {
		return nil, ErrUnauthenticated
	}
	if !auth.IsAdmin() {
		return nil, ErrForbidden
	}

	if async && s.indexQueue != nil {
		pending, err := s.indexer.Pending(ctx)
		if err != nil {
			s.logger.Error(logModule, "Index count failed", map[string]interface{}{"error": err.Error()})
			return nil, fmt.Errorf("%w: %v", ErrIndexUpdateFailed, err)
		}
		if pending == 0 {
			return nil, ErrNothingToIndex
		}

		job := dto.IndexJobMessage{RequestedBy: auth.UserId.String(), RequestedAt: s.now().UTC()}
		if err := s.indexQueue.Publish(ctx, job); err != nil {
			s.logger.Error(logModule, "Index job not queued", map[string]interface{}{"error": err.Error()})
			return nil, fmt.Errorf("%w: %v", ErrIndexQueueFailed, err)
		}
		return &dto.UpdateIndexResponse{
			Message: fmt.Sprintf("%d içerik indexleme kuyruğuna alındı.", pending),
			Count:   pending,
			Async:   true,
		}, nil
	}

	count, err := s.indexer.Run(ctx, false)
	if err != nil {
		if !errors.Is(err, ErrNothingToIndex) {
			s.logger.Error(logModule, "Index update failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, err
	}
	return &dto.UpdateIndexResponse{
		Message: fmt.Sprintf("%d içerik indexlendi.", count),
		Count:   count,
	}, nil
}

// BookSearch runs the combined Google Books + Open Library search.
func (s *aiService) BookSearch(ctx context.Context, query string, limit int) (*dto.BookSearchResponse, error) {
	q, err := validateQuery(query, ErrEmptyQuery)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = bookSearchDefaultLimit
	}
	if limit > bookSearchMaxLimit {
		limit = bookSearchMaxLimit
	}

	resp := &dto.BookSearchResponse{Query: q, Items: []catalog.Item{}}
	if s.books == nil {
		return resp, nil
	}

	items, err := s.searchBookCatalog(ctx, q, limit)
	if err != nil {
		s.logger.Error(logModule, "Book search failed", map[string]interface{}{"query": q, "error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrBookSearchFailed, err)
	}
	if items != nil {
		resp.Items = items
	}
	return resp, nil
}
