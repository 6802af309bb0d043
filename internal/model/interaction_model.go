package model

import (
	"time"

	"github.com/google/uuid"
)

type LibraryEntry struct {
	Id        int64     `gorm:"column:id;primaryKey"`
	UserId    uuid.UUID `gorm:"column:kullanici_id;type:uuid"`
	ContentId int64     `gorm:"column:icerik_id"`
	Status    string    `gorm:"column:durum"`
	Progress  float64   `gorm:"column:ilerleme"`
	Deleted   bool      `gorm:"column:silindi"`
	CreatedAt time.Time `gorm:"column:olusturulma_zamani"`
	UpdatedAt time.Time `gorm:"column:guncelleme_zamani"`
	Content   *Content  `gorm:"foreignKey:ContentId;references:Id"`
}

func (LibraryEntry) TableName() string {
	return "kutuphane_durumlari"
}

type Rating struct {
	Id        int64     `gorm:"column:id;primaryKey"`
	UserId    uuid.UUID `gorm:"column:kullanici_id;type:uuid"`
	ContentId int64     `gorm:"column:icerik_id"`
	Score     float64   `gorm:"column:puan"`
	Deleted   bool      `gorm:"column:silindi"`
	CreatedAt time.Time `gorm:"column:olusturulma_zamani"`
	Content   *Content  `gorm:"foreignKey:ContentId;references:Id"`
}

func (Rating) TableName() string {
	return "puanlamalar"
}

type Review struct {
	Id        int64     `gorm:"column:id;primaryKey"`
	UserId    uuid.UUID `gorm:"column:kullanici_id;type:uuid"`
	ContentId int64     `gorm:"column:icerik_id"`
	Deleted   bool      `gorm:"column:silindi"`
	CreatedAt time.Time `gorm:"column:olusturulma_zamani"`
}

func (Review) TableName() string {
	return "yorumlar"
}

type Activity struct {
	Id        int64     `gorm:"column:id;primaryKey"`
	UserId    uuid.UUID `gorm:"column:kullanici_id;type:uuid"`
	Type      string    `gorm:"column:aktivite_turu"`
	Deleted   bool      `gorm:"column:silindi"`
	CreatedAt time.Time `gorm:"column:olusturulma_zamani"`
}

func (Activity) TableName() string {
	return "aktiviteler"
}
