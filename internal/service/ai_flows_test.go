package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"saga-be/internal/dto"
	"saga-be/internal/entity"
	"saga-be/pkg/catalog"
	"saga-be/pkg/events"
	"saga-be/pkg/narrative"
	"saga-be/pkg/semantic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// --- passthroughs ---

func TestChat(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Chat(context.Background(), anonymous, &dto.ChatRequest{})
	assert.ErrorIs(t, err, ErrNoMessages)

	f.gateway.chat = semantic.Result[semantic.ChatResult]{Value: semantic.ChatResult{Message: "Merhaba!", Suggestions: []string{"Film öner"}}}
	res, err := f.svc.Chat(context.Background(), anonymous, &dto.ChatRequest{Messages: []dto.ChatMessage{{Role: "user", Content: "selam"}}})
	require.NoError(t, err)
	assert.Equal(t, "Merhaba!", res.Message)

	f.gateway.chat = semantic.Result[semantic.ChatResult]{Err: &semantic.GatewayError{Kind: semantic.ErrStatus, StatusCode: 503}}
	res, err = f.svc.Chat(context.Background(), anonymous, &dto.ChatRequest{Messages: []dto.ChatMessage{{Role: "user", Content: "selam"}}})
	require.NoError(t, err)
	assert.Equal(t, semantic.ChatUnavailable, res.Message)
}

func TestContentQuestion_ContentIdOverridesTitle(t *testing.T) {
	f := newFixture(t)
	f.uow.content.one = content(9, "Interstellar", entity.KindMovie)
	f.gateway.answer = semantic.Result[semantic.ContentAnswer]{Value: semantic.ContentAnswer{Answer: "Solucan deliği."}}

	res, err := f.svc.ContentQuestion(context.Background(), anonymous, &dto.ContentQuestionRequest{
		ContentId:    ptr(int64(9)),
		ContentTitle: "yanlış başlık",
		Question:     "Sonu ne anlatıyor?",
	})

	require.NoError(t, err)
	assert.Equal(t, "Solucan deliği.", res.Answer)
	assert.Equal(t, "Interstellar", f.gateway.lastTitle)

	_, err = f.svc.ContentQuestion(context.Background(), anonymous, &dto.ContentQuestionRequest{Question: " "})
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestContentQuestion_LookupFailure(t *testing.T) {
	f := newFixture(t)
	f.uow.content.findErr = errors.New("connection reset")

	_, err := f.svc.ContentQuestion(context.Background(), anonymous, &dto.ContentQuestionRequest{
		ContentId: ptr(int64(9)),
		Question:  "Sonu ne anlatıyor?",
	})

	assert.ErrorIs(t, err, ErrContentQuestionFailed)
	assert.NotErrorIs(t, err, ErrAskFailed)
}

func TestAssistant_SignedInCallerGetsContext(t *testing.T) {
	f := newFixture(t)
	f.uow.users.user = &entity.User{Id: member.UserId, Username: "deniz"}
	f.uow.library.entries = []*entity.LibraryEntry{
		{Content: content(1, "Dune", entity.KindBook)},
		{Content: nil},
		{Content: content(2, "Dark", entity.KindSeries)},
	}
	f.gateway.assistant = semantic.Result[semantic.AssistantResult]{Value: semantic.AssistantResult{Message: "Kütüphanene göz atalım."}}

	res, err := f.svc.Assistant(context.Background(), member, &dto.AssistantRequest{Query: "ne izlesem?"})

	require.NoError(t, err)
	assert.Equal(t, "Kütüphanene göz atalım.", res.Message)
	uc, ok := f.gateway.lastContext.(*dto.AssistantUserContext)
	require.True(t, ok)
	assert.Equal(t, "deniz", uc.Username)
	assert.Equal(t, []string{"Dune", "Dark"}, uc.RecentTitles)
}

func TestAssistant_AnonymousHasNoContext(t *testing.T) {
	f := newFixture(t)
	f.gateway.assistant = semantic.Result[semantic.AssistantResult]{Err: unavailable}

	res, err := f.svc.Assistant(context.Background(), anonymous, &dto.AssistantRequest{Query: "yardım"})

	require.NoError(t, err)
	assert.Equal(t, semantic.GenericFailure, res.Message)
	assert.Nil(t, f.gateway.lastContext)

	_, err = f.svc.Assistant(context.Background(), anonymous, &dto.AssistantRequest{Query: ""})
	assert.ErrorIs(t, err, ErrEmptyAssistant)
}

func TestContentSummary(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ContentSummary(context.Background(), anonymous, 4, true)
	assert.ErrorIs(t, err, ErrContentNotFound)
	assert.Zero(t, f.gateway.summarizeCalls)

	f.uow.content.one = content(4, "Matrix", entity.KindMovie)
	f.gateway.summary = semantic.Result[semantic.SummaryResult]{Value: semantic.SummaryResult{Summary: "Neo uyanır."}}
	res, err := f.svc.ContentSummary(context.Background(), anonymous, 4, true)
	require.NoError(t, err)
	assert.Equal(t, "Matrix", res.Title)
	assert.Equal(t, "film", res.Type)
	assert.Equal(t, "Neo uyanır.", res.Summary)
	assert.True(t, res.SpoilerFree)
	assert.False(t, res.Cached)

	_, err = f.svc.ContentSummary(context.Background(), anonymous, 0, true)
	assert.ErrorIs(t, err, ErrInvalidContentId)
}

// --- narrative ---

func libraryFor(year int) []*entity.LibraryEntry {
	at := time.Date(year, time.April, 2, 10, 0, 0, 0, time.UTC)
	movie := content(1, "Matrix", entity.KindMovie)
	movie.Metadata = datatypes.JSON(`{"turler":["Bilim Kurgu"],"sure":136}`)
	book := content(2, "Dune", entity.KindBook)
	book.Metadata = datatypes.JSON(`{"kategoriler":["Bilim Kurgu"],"sayfaSayisi":600}`)
	return []*entity.LibraryEntry{
		{Id: 1, Status: entity.LibraryStatusWatched, UpdatedAt: at, Content: movie},
		{Id: 2, Status: entity.LibraryStatusRead, UpdatedAt: at, Content: book},
	}
}

func TestSummary_RequiresAuthentication(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Summary(context.Background(), anonymous, 2025)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.svc.YearlySummary(context.Background(), anonymous, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.svc.Summary(context.Background(), member, 3000)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestSummary_ZeroInteractionsSkipsLLM(t *testing.T) {
	primary := &stubLLM{reply: "asla"}
	f := newFixture(t, func(d *AiServiceDeps) {
		d.Composer = narrative.NewComposer(primary, nil, nil)
	})

	res, err := f.svc.Summary(context.Background(), member, 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, res.Year)
	assert.Equal(t, "Özet bulunamadı", res.Title)
	assert.Equal(t, "Bu yıl için yeterli veri bulunamadı.", res.Narrative)
	assert.Zero(t, res.Stats.TotalCount)
	assert.False(t, res.GeneratedByAi)

	yearly, err := f.svc.YearlySummary(context.Background(), member, nil)
	require.NoError(t, err)
	assert.Equal(t, 2025, yearly.Year, "defaults to the current year")
	assert.Equal(t, "Bu yıl için yeterli veri bulunamadı.", yearly.Summary)
	assert.Zero(t, yearly.Stats.Total())

	assert.Zero(t, primary.calls)
}

func TestSummary_ProviderNarrative(t *testing.T) {
	primary := &stubLLM{reply: "Muhteşem bir bilim kurgu yılı! 🎬"}
	f := newFixture(t, func(d *AiServiceDeps) {
		d.Composer = narrative.NewComposer(primary, nil, nil)
	})
	f.uow.library.entries = libraryFor(2024)
	f.uow.reviews.count = 3

	res, err := f.svc.Summary(context.Background(), member, 2024)

	require.NoError(t, err)
	assert.Equal(t, "2024 Saga Özeti", res.Title)
	assert.Equal(t, "Muhteşem bir bilim kurgu yılı! 🎬", res.Narrative)
	assert.True(t, res.GeneratedByAi)
	assert.Equal(t, 2, res.Stats.TotalCount)
	assert.Equal(t, 3, res.Stats.TotalReviews)
	assert.Equal(t, []string{"Bilim Kurgu"}, res.Stats.TopGenres)
}

func TestSummary_TemplateIsDeterministic(t *testing.T) {
	f := newFixture(t, func(d *AiServiceDeps) {
		d.Composer = narrative.NewComposer(&stubLLM{}, &stubLLM{reply: " "}, nil)
	})
	f.uow.library.entries = libraryFor(2024)

	first, err := f.svc.Summary(context.Background(), member, 2024)
	require.NoError(t, err)
	second, err := f.svc.Summary(context.Background(), member, 2024)
	require.NoError(t, err)

	assert.False(t, first.GeneratedByAi)
	assert.Equal(t, first.Narrative, second.Narrative)
	assert.Equal(t, "🎬 2024 yılında 2 içerik tükettiniz! Toplam 2 saat izleme ve 600 sayfa okuma ile harika bir yıl geçirmişsiniz! En sevdiğiniz türler: Bilim Kurgu. Tebrikler! 🎉", first.Narrative)
}

func TestYearlySummary_Template(t *testing.T) {
	f := newFixture(t)
	f.uow.library.entries = libraryFor(2024)

	res, err := f.svc.YearlySummary(context.Background(), member, ptr(2024))

	require.NoError(t, err)
	assert.Equal(t, 2024, res.Year)
	assert.Equal(t, 1, res.Stats.Films)
	assert.Equal(t, 1, res.Stats.Books)
	assert.Equal(t, "Nisan", res.Stats.MostActiveMonth)
	assert.Contains(t, res.Summary, "1 film (2 saat)")
	assert.False(t, res.GeneratedByAi)
}

// --- index ---

func TestUpdateIndex_AdminOnly(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.UpdateIndex(context.Background(), anonymous, false)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.svc.UpdateIndex(context.Background(), member, false)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, f.gateway.indexCallCount())
}

func TestUpdateIndex_Sync(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.UpdateIndex(context.Background(), admin, false)
	assert.ErrorIs(t, err, ErrNothingToIndex)

	f.uow.content.all = contents(3, entity.KindMovie)
	f.gateway.index = semantic.Result[int]{Value: 3}
	res, err := f.svc.UpdateIndex(context.Background(), admin, false)
	require.NoError(t, err)
	assert.Equal(t, "3 içerik indexlendi.", res.Message)
	assert.Equal(t, 3, res.Count)
	require.Len(t, f.gateway.indexedDocs, 3)
	assert.Equal(t, "film", f.gateway.indexedDocs[0].Kind)
	require.Equal(t, 1, f.events.count())
	assert.Equal(t, events.TypeAiIndexUpdated, f.events.published[0].EventType())

	f.gateway.index = semantic.Result[int]{Err: unavailable}
	_, err = f.svc.UpdateIndex(context.Background(), admin, false)
	assert.ErrorIs(t, err, ErrIndexFailed)
	assert.Equal(t, 1, f.events.count())
}

func TestUpdateIndex_AsyncQueuesJob(t *testing.T) {
	f := newFixture(t)
	f.uow.content.count = 7

	res, err := f.svc.UpdateIndex(context.Background(), admin, true)

	require.NoError(t, err)
	assert.True(t, res.Async)
	assert.Equal(t, 7, res.Count)
	require.Len(t, f.queue.payloads, 1)
	job := f.queue.payloads[0].(dto.IndexJobMessage)
	assert.Equal(t, admin.UserId.String(), job.RequestedBy)
	assert.Zero(t, f.gateway.indexCallCount())

	f.queue.err = errors.New("closed")
	_, err = f.svc.UpdateIndex(context.Background(), admin, true)
	assert.ErrorIs(t, err, ErrIndexQueueFailed)
}

// --- book search ---

func TestBookSearch(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.BookSearch(context.Background(), "d", 0)
	assert.ErrorIs(t, err, ErrQueryTooShort)

	f.books.items = []catalog.Item{{ExternalId: "gb-1", Title: "Dune"}}
	res, err := f.svc.BookSearch(context.Background(), "dune", 0)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)

	f.books.err = errors.New("both down")
	_, err = f.svc.BookSearch(context.Background(), "vakıf", 5)
	assert.ErrorIs(t, err, ErrBookSearchFailed)
}
