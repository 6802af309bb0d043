package contract

import (
	"context"

	"saga-be/internal/entity"
	"saga-be/internal/repository/specification"
)

type UserRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}
