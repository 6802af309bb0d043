package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Username  string    `gorm:"column:kullanici_adi"`
	Role      string    `gorm:"column:rol"`
	Active    bool      `gorm:"column:aktif"`
	Deleted   bool      `gorm:"column:silindi"`
	CreatedAt time.Time `gorm:"column:olusturulma_zamani"`
}

func (User) TableName() string {
	return "kullanicilar"
}
