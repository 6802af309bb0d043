package scope

import "gorm.io/gorm"

func OrderByUpdatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("guncelleme_zamani DESC")
}

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("olusturulma_zamani DESC")
}

// ExcludeDeleted hides rows flagged with silindi
func ExcludeDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("silindi = ?", false)
}
