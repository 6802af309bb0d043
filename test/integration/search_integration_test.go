package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"saga-be/internal/entity"
	"saga-be/internal/mapper"
	"saga-be/internal/model"
	"saga-be/internal/repository/specification"
	"saga-be/internal/repository/unitofwork"
	"saga-be/pkg/database"
	"saga-be/pkg/search"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false, database.PoolConfig{MaxOpenConns: 4})
	require.NoError(t, err)
	require.NoError(t, database.MigrateDevSchema(db))
	return db
}

func seedContent(t *testing.T, db *gorm.DB, title, synopsis string, kind entity.Kind, deleted bool) *model.Content {
	t.Helper()
	row := mapper.NewContentMapper().ToModel(&entity.ContentItem{
		ExternalId: uuid.NewString(),
		ApiSource:  entity.ApiSourceOther,
		Kind:       kind,
		Title:      title,
		Synopsis:   synopsis,
		IsDeleted:  deleted,
	})
	require.NoError(t, db.Create(row).Error)
	t.Cleanup(func() { db.Delete(&model.Content{}, row.Id) })
	return row
}

func TestContentSearch(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	marker := "zqx" + uuid.NewString()[:8]

	film := seedContent(t, db, "Arrakis "+marker, "Çöl gezegeninde geçen bir destan.", entity.KindMovie, false)
	seedContent(t, db, "Arrakis "+marker+" kitabı", "Romanın kendisi.", entity.KindBook, false)
	seedContent(t, db, "Silinmiş "+marker, "Görünmemeli.", entity.KindMovie, true)

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	searcher := search.NewSearcher(uow.ContentRepository(), nil)

	t.Run("ranked stage filters by kind", func(t *testing.T) {
		kind := entity.KindMovie
		items, err := searcher.RankedOnly(ctx, marker, &kind, 10)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, film.Id, items[0].Id)
	})

	t.Run("substring stage skips deleted rows", func(t *testing.T) {
		items, err := searcher.SearchTitles(ctx, marker, nil, 10)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("count ignores deleted rows", func(t *testing.T) {
		n, err := uow.ContentRepository().Count(ctx,
			specification.NotDeleted{},
			specification.TitleContains{Query: marker},
		)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})
}
