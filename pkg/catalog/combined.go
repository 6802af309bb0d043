package catalog

import (
	"context"
	"errors"

	"saga-be/internal/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// CombinedBookSearch queries a primary and a secondary book catalog
// concurrently and merges primary-first with duplicates removed.
type CombinedBookSearch struct {
	primary   BookCatalog
	secondary BookCatalog
	logger    logger.ILogger
}

var _ BookCatalog = &CombinedBookSearch{}

func NewCombinedBookSearch(primary, secondary BookCatalog, log logger.ILogger) *CombinedBookSearch {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &CombinedBookSearch{primary: primary, secondary: secondary, logger: log}
}

// SearchBooks fails only when both sources fail.
func (s *CombinedBookSearch) SearchBooks(ctx context.Context, query string, limit int) ([]Item, error) {
	var (
		primaryItems, secondaryItems []Item
		primaryErr, secondaryErr     error
	)

	var g errgroup.Group
	g.Go(func() error {
		primaryItems, primaryErr = s.primary.SearchBooks(ctx, query, limit)
		return nil
	})
	g.Go(func() error {
		secondaryItems, secondaryErr = s.secondary.SearchBooks(ctx, query, limit)
		return nil
	})
	_ = g.Wait()

	if primaryErr != nil {
		s.logger.Warn("CATALOG", "Primary book search failed", map[string]interface{}{"query": query, "error": primaryErr.Error()})
	}
	if secondaryErr != nil {
		s.logger.Warn("CATALOG", "Secondary book search failed", map[string]interface{}{"query": query, "error": secondaryErr.Error()})
	}
	if primaryErr != nil && secondaryErr != nil {
		return nil, errors.Join(primaryErr, secondaryErr)
	}

	return Merge(limit, primaryItems, secondaryItems), nil
}

// Merge concatenates the lists in order, keeps the first item per DedupKey
// and truncates to limit (limit <= 0 means no cap).
func Merge(limit int, lists ...[]Item) []Item {
	seen := make(map[string]struct{})
	merged := make([]Item, 0)
	for _, list := range lists {
		for _, item := range list {
			key := item.DedupKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, item)
			if limit > 0 && len(merged) >= limit {
				return merged
			}
		}
	}
	return merged
}
