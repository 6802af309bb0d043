package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"saga-be/internal/entity"
	"saga-be/internal/pkg/logger"
	"saga-be/internal/repository/contract"
	"saga-be/internal/repository/specification"
	"saga-be/pkg/metrics"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// RankedLimit is how many rows each local stage fetches.
	RankedLimit = 20
	// MaxCandidates caps any list handed to an LLM prompt.
	MaxCandidates = 12

	StageFullText  = "fts"
	StageSubstring = "substring"
	StageNone      = "none"
)

// Searcher is local corpus search: ranked full-text first, substring
// match when the ranked stage fails or finds nothing.
type Searcher struct {
	repo   contract.ContentRepository
	logger logger.ILogger
}

func NewSearcher(repo contract.ContentRepository, log logger.ILogger) *Searcher {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Searcher{repo: repo, logger: log}
}

// Search never returns a ranked-stage error; only a failing substring stage
// (database unavailable) is reported.
func (s *Searcher) Search(ctx context.Context, query string, kind *entity.Kind, limit int) ([]*entity.ContentItem, string, error) {
	query = strings.TrimSpace(query)
	if limit <= 0 {
		limit = RankedLimit
	}

	ranked, err := s.repo.FullTextSearch(ctx, query, kind, limit)
	if err != nil {
		s.logRankedFailure(query, err)
	} else if len(ranked) > 0 {
		return FilterKind(ranked, kind), StageFullText, nil
	}

	specs := []specification.Specification{
		specification.NotDeleted{},
		specification.TitleOrSynopsisContains{Query: query},
	}
	if kind != nil {
		specs = append(specs, specification.ByKind{Kind: *kind})
	}
	specs = append(specs, specification.MostPopularFirst{}, specification.Pagination{Limit: limit})

	items, err := s.repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, StageSubstring, fmt.Errorf("substring search: %w", err)
	}
	if len(items) == 0 {
		return items, StageNone, nil
	}
	return items, StageSubstring, nil
}

// SearchTitles matches titles only, used after an LLM has named the work.
func (s *Searcher) SearchTitles(ctx context.Context, title string, kind *entity.Kind, limit int) ([]*entity.ContentItem, error) {
	specs := []specification.Specification{
		specification.NotDeleted{},
		specification.TitleContains{Query: strings.TrimSpace(title)},
	}
	if kind != nil {
		specs = append(specs, specification.ByKind{Kind: *kind})
	}
	specs = append(specs, specification.MostPopularFirst{}, specification.Pagination{Limit: limit})
	return s.repo.FindAll(ctx, specs...)
}

// RankedOnly runs the ranked stage alone and reports its errors.
func (s *Searcher) RankedOnly(ctx context.Context, query string, kind *entity.Kind, limit int) ([]*entity.ContentItem, error) {
	items, err := s.repo.FullTextSearch(ctx, strings.TrimSpace(query), kind, limit)
	if err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}
	return items, nil
}

func (s *Searcher) logRankedFailure(query string, err error) {
	details := map[string]interface{}{
		"query": query,
		"error": err.Error(),
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		details["pg_code"] = pgErr.Code
	}
	metrics.RecordFallbackStage("local_search", "fts_error")
	s.logger.Warn("SEARCH", "Full-text search failed, falling back to substring match", details)
}

// FilterKind keeps items of the given kind; nil keeps everything.
func FilterKind(items []*entity.ContentItem, kind *entity.Kind) []*entity.ContentItem {
	if kind == nil {
		return items
	}
	out := make([]*entity.ContentItem, 0, len(items))
	for _, it := range items {
		if it.Kind == *kind {
			out = append(out, it)
		}
	}
	return out
}

// Candidates truncates to MaxCandidates and projects for prompting.
func Candidates(items []*entity.ContentItem) []entity.SearchCandidate {
	n := len(items)
	if n > MaxCandidates {
		n = MaxCandidates
	}
	out := make([]entity.SearchCandidate, n)
	for i := 0; i < n; i++ {
		out[i] = items[i].ToCandidate()
	}
	return out
}
