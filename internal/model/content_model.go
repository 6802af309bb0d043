package model

import (
	"time"

	"gorm.io/datatypes"
)

// Content maps the catalog table. arama_vektoru is a generated tsvector
// column maintained by the database and never written from Go.
type Content struct {
	Id              int64          `gorm:"column:id;primaryKey"`
	ExternalId      string         `gorm:"column:harici_id"`
	ApiSource       string         `gorm:"column:api_kaynagi"`
	Kind            string         `gorm:"column:tur"`
	Title           string         `gorm:"column:baslik"`
	Synopsis        *string        `gorm:"column:aciklama"`
	PosterUrl       *string        `gorm:"column:poster_url"`
	ReleaseDate     *time.Time     `gorm:"column:yayin_tarihi;type:date"`
	AverageRating   float64        `gorm:"column:ortalama_puan"`
	RatingCount     int            `gorm:"column:puanlama_sayisi"`
	PopularityScore float64        `gorm:"column:populerlik_skoru;default:0;->"`
	Deleted         bool           `gorm:"column:silindi"`
	CreatedAt       time.Time      `gorm:"column:olusturulma_zamani"`
	UpdatedAt       time.Time      `gorm:"column:guncelleme_zamani"`
	Metadata        datatypes.JSON `gorm:"column:meta_veri;type:jsonb"`
}

func (Content) TableName() string {
	return "icerikler"
}
