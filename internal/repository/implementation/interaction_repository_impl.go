package implementation

import (
	"context"

	"saga-be/internal/entity"
	"saga-be/internal/mapper"
	"saga-be/internal/model"
	"saga-be/internal/repository/contract"
	"saga-be/internal/repository/scope"
	"saga-be/internal/repository/specification"

	"gorm.io/gorm"
)

type LibraryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InteractionMapper
}

func NewLibraryRepository(db *gorm.DB) contract.LibraryRepository {
	return &LibraryRepositoryImpl{db: db, mapper: mapper.NewInteractionMapper()}
}

func (r *LibraryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LibraryEntry, error) {
	var models []*model.LibraryEntry
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.ExcludeDeleted, scope.OrderByUpdatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.LibraryEntriesToEntities(models), nil
}

type RatingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InteractionMapper
}

func NewRatingRepository(db *gorm.DB) contract.RatingRepository {
	return &RatingRepositoryImpl{db: db, mapper: mapper.NewInteractionMapper()}
}

func (r *RatingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Rating, error) {
	var models []*model.Rating
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.ExcludeDeleted, scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.RatingsToEntities(models), nil
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) contract.ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Review{}).Scopes(scope.ExcludeDeleted), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type ActivityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InteractionMapper
}

func NewActivityRepository(db *gorm.DB) contract.ActivityRepository {
	return &ActivityRepositoryImpl{db: db, mapper: mapper.NewInteractionMapper()}
}

func (r *ActivityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Activity, error) {
	var models []*model.Activity
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.ExcludeDeleted, scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ActivitiesToEntities(models), nil
}

func (r *ActivityRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Activity{}).Scopes(scope.ExcludeDeleted), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
