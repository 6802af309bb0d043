package implementation

import (
	"context"
	"errors"

	"saga-be/internal/entity"
	"saga-be/internal/mapper"
	"saga-be/internal/model"
	"saga-be/internal/repository/contract"
	"saga-be/internal/repository/specification"

	"gorm.io/gorm"
)

const fullTextSearchQuery = `
SELECT *
FROM icerikler
WHERE silindi = false
  AND (@kind = '' OR tur::text = @kind)
  AND arama_vektoru @@ plainto_tsquery('turkish', @query)
ORDER BY ts_rank(arama_vektoru, plainto_tsquery('turkish', @query)) DESC
LIMIT @limit`

type ContentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentMapper
}

func NewContentRepository(db *gorm.DB) contract.ContentRepository {
	return &ContentRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentMapper(),
	}
}

func (r *ContentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContentItem, error) {
	var m model.Content
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *ContentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContentItem, error) {
	var models []*model.Content
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *ContentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Content{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ContentRepositoryImpl) FullTextSearch(ctx context.Context, query string, kind *entity.Kind, limit int) ([]*entity.ContentItem, error) {
	kindFilter := ""
	if kind != nil {
		kindFilter = string(*kind)
	}

	var models []*model.Content
	err := r.db.WithContext(ctx).
		Raw(fullTextSearchQuery, map[string]interface{}{"query": query, "kind": kindFilter, "limit": limit}).
		Scan(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
