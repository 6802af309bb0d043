package service

import (
	"context"
	"sync"

	"saga-be/internal/entity"
	"saga-be/internal/repository/contract"
	"saga-be/internal/repository/specification"
	"saga-be/internal/repository/unitofwork"
	"saga-be/pkg/catalog"
	"saga-be/pkg/events"
	"saga-be/pkg/llm"
	"saga-be/pkg/semantic"
)

// --- repositories ---

type fakeContentRepo struct {
	mu        sync.Mutex
	ranked    []*entity.ContentItem
	rankedErr error
	all       []*entity.ContentItem
	findErr   error
	one       *entity.ContentItem
	count     int64

	rankedCalls int
	findCalls   int
	oneCalls    int
	lastLimit   int
}

func (f *fakeContentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.oneCalls++
	return f.one, f.findErr
}

func (f *fakeContentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	return f.all, f.findErr
}

func (f *fakeContentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return f.count, f.findErr
}

func (f *fakeContentRepo) FullTextSearch(ctx context.Context, query string, kind *entity.Kind, limit int) ([]*entity.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rankedCalls++
	f.lastLimit = limit
	return f.ranked, f.rankedErr
}

func (f *fakeContentRepo) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rankedCalls + f.findCalls + f.oneCalls
}

type fakeLibraryRepo struct {
	entries []*entity.LibraryEntry
	err     error
}

func (f *fakeLibraryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LibraryEntry, error) {
	return f.entries, f.err
}

type fakeRatingRepo struct {
	ratings []*entity.Rating
}

func (f *fakeRatingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Rating, error) {
	return f.ratings, nil
}

type fakeReviewRepo struct{ count int64 }

func (f *fakeReviewRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return f.count, nil
}

type fakeActivityRepo struct{ activities []*entity.Activity }

func (f *fakeActivityRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Activity, error) {
	return f.activities, nil
}

func (f *fakeActivityRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.activities)), nil
}

type fakeUserRepo struct{ user *entity.User }

func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return f.user, nil
}

type fakeUow struct {
	content  *fakeContentRepo
	library  *fakeLibraryRepo
	ratings  *fakeRatingRepo
	reviews  *fakeReviewRepo
	activity *fakeActivityRepo
	users    *fakeUserRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		content:  &fakeContentRepo{},
		library:  &fakeLibraryRepo{},
		ratings:  &fakeRatingRepo{},
		reviews:  &fakeReviewRepo{},
		activity: &fakeActivityRepo{},
		users:    &fakeUserRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) ContentRepository() contract.ContentRepository   { return u.content }
func (u *fakeUow) LibraryRepository() contract.LibraryRepository   { return u.library }
func (u *fakeUow) RatingRepository() contract.RatingRepository     { return u.ratings }
func (u *fakeUow) ReviewRepository() contract.ReviewRepository     { return u.reviews }
func (u *fakeUow) ActivityRepository() contract.ActivityRepository { return u.activity }
func (u *fakeUow) UserRepository() contract.UserRepository         { return u.users }

type fakeFactory struct{ uow *fakeUow }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// --- semantic gateway ---

var unavailable = &semantic.GatewayError{Kind: semantic.ErrUnavailable, Op: "test"}

type fakeGateway struct {
	mu sync.Mutex

	search    semantic.Result[[]semantic.Match]
	index     semantic.Result[int]
	healthy   semantic.Result[bool]
	identify  semantic.Result[semantic.IdentifyResult]
	chat      semantic.Result[semantic.ChatResult]
	answer    semantic.Result[semantic.ContentAnswer]
	assistant semantic.Result[semantic.AssistantResult]
	summary   semantic.Result[semantic.SummaryResult]

	indexCalls     int
	indexedDocs    []semantic.IndexDocument
	summarizeCalls int
	lastTitle      string
	lastContext    interface{}
}

func (g *fakeGateway) Search(ctx context.Context, query string, limit int, kind *string) semantic.Result[[]semantic.Match] {
	return g.search
}

func (g *fakeGateway) Index(ctx context.Context, docs []semantic.IndexDocument) semantic.Result[int] {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.indexCalls++
	g.indexedDocs = docs
	return g.index
}

func (g *fakeGateway) indexCallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.indexCalls
}

func (g *fakeGateway) Healthy(ctx context.Context) semantic.Result[bool] { return g.healthy }

func (g *fakeGateway) Identify(ctx context.Context, description string, kind *string) semantic.Result[semantic.IdentifyResult] {
	return g.identify
}

func (g *fakeGateway) Chat(ctx context.Context, turns []semantic.ChatTurn, chatContext *string) semantic.Result[semantic.ChatResult] {
	return g.chat
}

func (g *fakeGateway) AskAboutContent(ctx context.Context, title, contentType, question string, description *string) semantic.Result[semantic.ContentAnswer] {
	g.lastTitle = title
	return g.answer
}

func (g *fakeGateway) Assistant(ctx context.Context, query string, currentPage *string, userContext interface{}, history []semantic.ChatTurn) semantic.Result[semantic.AssistantResult] {
	g.lastContext = userContext
	return g.assistant
}

func (g *fakeGateway) Summarize(ctx context.Context, title, contentType string, spoilerFree bool) semantic.Result[semantic.SummaryResult] {
	g.summarizeCalls++
	return g.summary
}

// --- llm, catalogs, events ---

type stubLLM struct {
	reply string
	err   error
	calls int
	last  []llm.Message
}

func (s *stubLLM) Name() string { return "stub" }

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	s.last = history
	return s.reply, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{llm.User(prompt)}, options...)
}

type fakeMovies struct {
	movies      []catalog.Item
	series      []catalog.Item
	err         error
	movieCalls  int
	seriesCalls int
}

func (f *fakeMovies) SearchMovies(ctx context.Context, query string, page int) ([]catalog.Item, error) {
	f.movieCalls++
	return f.movies, f.err
}

func (f *fakeMovies) SearchSeries(ctx context.Context, query string, page int) ([]catalog.Item, error) {
	f.seriesCalls++
	return f.series, f.err
}

type fakeBooks struct {
	items []catalog.Item
	err   error
	calls int
}

func (f *fakeBooks) SearchBooks(ctx context.Context, query string, limit int) ([]catalog.Item, error) {
	f.calls++
	return f.items, f.err
}

type fakeEvents struct {
	mu        sync.Mutex
	published []events.Event
}

func (f *fakeEvents) Publish(ctx context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, event)
	return nil
}

func (f *fakeEvents) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

type fakeQueue struct {
	payloads []interface{}
	err      error
}

func (f *fakeQueue) Publish(ctx context.Context, payload interface{}) error {
	f.payloads = append(f.payloads, payload)
	return f.err
}
