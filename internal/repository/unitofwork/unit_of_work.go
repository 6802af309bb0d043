package unitofwork

import (
	"context"

	"saga-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ContentRepository() contract.ContentRepository
	LibraryRepository() contract.LibraryRepository
	RatingRepository() contract.RatingRepository
	ReviewRepository() contract.ReviewRepository
	ActivityRepository() contract.ActivityRepository
	UserRepository() contract.UserRepository
}
