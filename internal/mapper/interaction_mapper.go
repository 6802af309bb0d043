package mapper

import (
	"saga-be/internal/entity"
	"saga-be/internal/model"
)

type InteractionMapper struct {
	content *ContentMapper
}

func NewInteractionMapper() *InteractionMapper {
	return &InteractionMapper{content: NewContentMapper()}
}

func (m *InteractionMapper) LibraryEntryToEntity(l *model.LibraryEntry) *entity.LibraryEntry {
	if l == nil {
		return nil
	}
	return &entity.LibraryEntry{
		Id:        l.Id,
		UserId:    l.UserId,
		ContentId: l.ContentId,
		Status:    entity.LibraryStatus(l.Status),
		Progress:  l.Progress,
		UpdatedAt: l.UpdatedAt,
		Content:   m.content.ToEntity(l.Content),
	}
}

func (m *InteractionMapper) LibraryEntriesToEntities(entries []*model.LibraryEntry) []*entity.LibraryEntry {
	out := make([]*entity.LibraryEntry, len(entries))
	for i, l := range entries {
		out[i] = m.LibraryEntryToEntity(l)
	}
	return out
}

func (m *InteractionMapper) RatingToEntity(r *model.Rating) *entity.Rating {
	if r == nil {
		return nil
	}
	return &entity.Rating{
		Id:        r.Id,
		UserId:    r.UserId,
		ContentId: r.ContentId,
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
		Content:   m.content.ToEntity(r.Content),
	}
}

func (m *InteractionMapper) RatingsToEntities(ratings []*model.Rating) []*entity.Rating {
	out := make([]*entity.Rating, len(ratings))
	for i, r := range ratings {
		out[i] = m.RatingToEntity(r)
	}
	return out
}

func (m *InteractionMapper) ActivitiesToEntities(activities []*model.Activity) []*entity.Activity {
	out := make([]*entity.Activity, len(activities))
	for i, a := range activities {
		out[i] = &entity.Activity{
			Id:        a.Id,
			UserId:    a.UserId,
			Type:      a.Type,
			CreatedAt: a.CreatedAt,
		}
	}
	return out
}
