package contract

import (
	"context"

	"saga-be/internal/entity"
	"saga-be/internal/repository/specification"
)

type ContentRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContentItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContentItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FullTextSearch ranks non-deleted rows by ts_rank against the Turkish
	// tsvector column, best first. A nil kind means every kind.
	FullTextSearch(ctx context.Context, query string, kind *entity.Kind, limit int) ([]*entity.ContentItem, error)
}
