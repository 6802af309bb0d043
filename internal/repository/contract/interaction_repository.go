package contract

import (
	"context"

	"saga-be/internal/entity"
	"saga-be/internal/repository/specification"
)

type LibraryRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LibraryEntry, error)
}

type RatingRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Rating, error)
}

type ReviewRepository interface {
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ActivityRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Activity, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
