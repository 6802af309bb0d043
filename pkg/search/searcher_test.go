package search

import (
	"context"
	"errors"
	"testing"

	"saga-be/internal/entity"
	"saga-be/internal/repository/specification"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentRepo struct {
	ranked     []*entity.ContentItem
	rankedErr  error
	substring  []*entity.ContentItem
	findErr    error
	rankedHits int
	findHits   int
	lastSpecs  []specification.Specification
}

func (f *fakeContentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContentItem, error) {
	return nil, nil
}

func (f *fakeContentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContentItem, error) {
	f.findHits++
	f.lastSpecs = specs
	return f.substring, f.findErr
}

func (f *fakeContentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (f *fakeContentRepo) FullTextSearch(ctx context.Context, query string, kind *entity.Kind, limit int) ([]*entity.ContentItem, error) {
	f.rankedHits++
	return f.ranked, f.rankedErr
}

func item(id int64, title string, kind entity.Kind) *entity.ContentItem {
	return &entity.ContentItem{Id: id, Title: title, Kind: kind}
}

func TestSearch_RankedResultsWin(t *testing.T) {
	repo := &fakeContentRepo{
		ranked:    []*entity.ContentItem{item(1, "Matrix", entity.KindMovie)},
		substring: []*entity.ContentItem{item(2, "Matrix Reloaded", entity.KindMovie)},
	}

	items, stage, err := NewSearcher(repo, nil).Search(context.Background(), " matrix ", nil, 20)

	require.NoError(t, err)
	assert.Equal(t, StageFullText, stage)
	assert.Equal(t, int64(1), items[0].Id)
	assert.Equal(t, 0, repo.findHits, "substring stage must not run when ranked stage has rows")
}

func TestSearch_FallsBackWhenRankedEmpty(t *testing.T) {
	repo := &fakeContentRepo{
		substring: []*entity.ContentItem{item(2, "Matrix Reloaded", entity.KindMovie)},
	}
	kind := entity.KindMovie

	items, stage, err := NewSearcher(repo, nil).Search(context.Background(), "matrix", &kind, 20)

	require.NoError(t, err)
	assert.Equal(t, StageSubstring, stage)
	require.Len(t, items, 1)
	assert.Contains(t, repo.lastSpecs, specification.Specification(specification.ByKind{Kind: entity.KindMovie}))
	assert.Contains(t, repo.lastSpecs, specification.Specification(specification.MostPopularFirst{}))
}

func TestSearch_RankedErrorIsSwallowed(t *testing.T) {
	repo := &fakeContentRepo{
		rankedErr: &pgconn.PgError{Code: "42601", Message: "syntax error in tsquery"},
		substring: []*entity.ContentItem{item(3, "Dune", entity.KindBook)},
	}

	items, stage, err := NewSearcher(repo, nil).Search(context.Background(), "dune &", nil, 20)

	require.NoError(t, err)
	assert.Equal(t, StageSubstring, stage)
	assert.Len(t, items, 1)
}

func TestSearch_SubstringErrorPropagates(t *testing.T) {
	repo := &fakeContentRepo{findErr: errors.New("connection refused")}

	_, _, err := NewSearcher(repo, nil).Search(context.Background(), "x", nil, 20)

	assert.Error(t, err)
}

func TestSearch_NothingFound(t *testing.T) {
	repo := &fakeContentRepo{}

	items, stage, err := NewSearcher(repo, nil).Search(context.Background(), "the matrix", nil, 20)

	require.NoError(t, err)
	assert.Equal(t, StageNone, stage)
	assert.Empty(t, items)
}

func TestCandidates_CapsAtTwelve(t *testing.T) {
	items := make([]*entity.ContentItem, 20)
	for i := range items {
		items[i] = item(int64(i+1), "t", entity.KindMovie)
	}

	c := Candidates(items)

	assert.Len(t, c, MaxCandidates)
	assert.Equal(t, int64(1), c[0].Id)
	assert.Empty(t, Candidates(nil))
}

func TestFilterKind(t *testing.T) {
	items := []*entity.ContentItem{item(1, "a", entity.KindMovie), item(2, "b", entity.KindBook)}
	book := entity.KindBook

	assert.Len(t, FilterKind(items, nil), 2)
	filtered := FilterKind(items, &book)
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(2), filtered[0].Id)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		raw  string
		want *entity.Kind
	}{
		{"film", kindPtr(entity.KindMovie)},
		{" DIZI ", kindPtr(entity.KindSeries)},
		{"Kitap", kindPtr(entity.KindBook)},
		{"book", kindPtr(entity.KindBook)},
		{"", nil},
		{"podcast", nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKind(tt.raw))
		})
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantKind  *entity.Kind
		wantQuery string
	}{
		{"plain text", "uzayda geçen bir film", nil, "uzayda geçen bir film"},
		{"slash kind", "/kitap çöl gezegeni", kindPtr(entity.KindBook), "çöl gezegeni"},
		{"tur prefix", "ejderhalar /tur:dizi", kindPtr(entity.KindSeries), "ejderhalar"},
		{"unknown command kept", "/foo bar", nil, "/foo bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuery(tt.raw)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantQuery, got.SearchQuery)
		})
	}
}

func kindPtr(k entity.Kind) *entity.Kind {
	return &k
}
