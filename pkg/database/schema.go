package database

import (
	"fmt"

	"saga-be/internal/model"

	"gorm.io/gorm"
)

// schemaModels are the tables the AI backend reads. Production owns its
// schema; this list only bootstraps local and integration databases.
var schemaModels = []interface{}{
	&model.User{},
	&model.Content{},
	&model.LibraryEntry{},
	&model.Rating{},
	&model.Review{},
	&model.Activity{},
}

// AutoMigrate cannot express generated columns, so the search vector and
// its index are added afterwards.
var postMigrationSQL = []string{
	`ALTER TABLE icerikler ADD COLUMN IF NOT EXISTS arama_vektoru tsvector
	 GENERATED ALWAYS AS (to_tsvector('turkish', coalesce(baslik, '') || ' ' || coalesce(aciklama, ''))) STORED;`,
	`CREATE INDEX IF NOT EXISTS ix_icerikler_arama_vektoru ON icerikler USING GIN (arama_vektoru);`,
	`CREATE INDEX IF NOT EXISTS ix_kutuphane_durumlari_kullanici ON kutuphane_durumlari (kullanici_id, guncelleme_zamani);`,
	`CREATE INDEX IF NOT EXISTS ix_puanlamalar_kullanici ON puanlamalar (kullanici_id, olusturulma_zamani);`,
}

// MigrateDevSchema creates the read model used by the repositories.
// It is idempotent.
func MigrateDevSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(schemaModels...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("post migration: %w", err)
		}
	}
	return nil
}
