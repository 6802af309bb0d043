package mapper

import (
	"saga-be/internal/entity"
	"saga-be/internal/model"
)

type ContentMapper struct{}

func NewContentMapper() *ContentMapper {
	return &ContentMapper{}
}

func (m *ContentMapper) ToEntity(c *model.Content) *entity.ContentItem {
	if c == nil {
		return nil
	}

	return &entity.ContentItem{
		Id:              c.Id,
		ExternalId:      c.ExternalId,
		ApiSource:       entity.ApiSource(c.ApiSource),
		Kind:            entity.Kind(c.Kind),
		Title:           c.Title,
		Synopsis:        derefString(c.Synopsis),
		PosterUrl:       derefString(c.PosterUrl),
		ReleaseDate:     c.ReleaseDate,
		AverageRating:   c.AverageRating,
		RatingCount:     c.RatingCount,
		PopularityScore: c.PopularityScore,
		Metadata:        c.Metadata,
		IsDeleted:       c.Deleted,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (m *ContentMapper) ToModel(c *entity.ContentItem) *model.Content {
	if c == nil {
		return nil
	}

	return &model.Content{
		Id:              c.Id,
		ExternalId:      c.ExternalId,
		ApiSource:       string(c.ApiSource),
		Kind:            string(c.Kind),
		Title:           c.Title,
		Synopsis:        optionalString(c.Synopsis),
		PosterUrl:       optionalString(c.PosterUrl),
		ReleaseDate:     c.ReleaseDate,
		AverageRating:   c.AverageRating,
		RatingCount:     c.RatingCount,
		PopularityScore: c.PopularityScore,
		Metadata:        c.Metadata,
		Deleted:         c.IsDeleted,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (m *ContentMapper) ToEntities(contents []*model.Content) []*entity.ContentItem {
	entities := make([]*entity.ContentItem, len(contents))
	for i, c := range contents {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
