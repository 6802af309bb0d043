package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kullanici_id = ?", s.UserID)
}

type ByContentID struct {
	ContentID int64
}

func (s ByContentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("icerik_id = ?", s.ContentID)
}

// UpdatedBetween is a half-open [From, To) window on guncelleme_zamani
type UpdatedBetween struct {
	From time.Time
	To   time.Time
}

func (s UpdatedBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("guncelleme_zamani >= ? AND guncelleme_zamani < ?", s.From, s.To)
}

// CreatedBetween is a half-open [From, To) window on olusturulma_zamani
type CreatedBetween struct {
	From time.Time
	To   time.Time
}

func (s CreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("olusturulma_zamani >= ? AND olusturulma_zamani < ?", s.From, s.To)
}

// WithContent preloads the catalog row of an interaction
type WithContent struct{}

func (s WithContent) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Content")
}

// Year returns the calendar year window for the given year in loc.
func Year(year int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(1, 0, 0)
}
