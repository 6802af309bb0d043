package specification

import (
	"strings"

	"saga-be/internal/entity"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns user input into an ILIKE pattern with the
// metacharacters escaped, so "100%" matches literally.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

type ByKind struct {
	Kind entity.Kind
}

func (s ByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tur = ?", string(s.Kind))
}

// TitleContains matches baslik case-insensitively
type TitleContains struct {
	Query string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("baslik ILIKE ?", ContainsPattern(s.Query))
}

// TitleOrSynopsisContains matches baslik OR aciklama case-insensitively
type TitleOrSynopsisContains struct {
	Query string
}

func (s TitleOrSynopsisContains) Apply(db *gorm.DB) *gorm.DB {
	pattern := ContainsPattern(s.Query)
	return db.Where("(baslik ILIKE ? OR aciklama ILIKE ?)", pattern, pattern)
}

// MostPopularFirst orders by popularity, then average rating
type MostPopularFirst struct{}

func (s MostPopularFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("populerlik_skoru DESC").Order("ortalama_puan DESC")
}
