package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"saga-be/internal/dto"
	"saga-be/internal/entity"
	"saga-be/internal/pkg/logger"
	"saga-be/internal/pkg/serverutils"
	"saga-be/internal/repository/memory"
	"saga-be/internal/repository/unitofwork"
	"saga-be/pkg/catalog"
	"saga-be/pkg/events"
	"saga-be/pkg/llm"
	"saga-be/pkg/metrics"
	"saga-be/pkg/narrative"
	"saga-be/pkg/search"
	"saga-be/pkg/semantic"
	"saga-be/pkg/store"

	"github.com/goccy/go-json"
)

const (
	minQueryLength = 2

	identifyLocalCap = 5
	identifyTotalCap = 10

	semanticDefaultLimit = 10
	semanticMaxLimit     = 50

	ftsScore  = 0.5
	ftsReason = "Metin araması sonucu"

	answerClosestMatches = "En yakın eşleşmeler aşağıda listelendi."
	answerNoMatch        = "Uygun bir eşleşme bulamadım."
	identifyNotFound     = "LLM bu tanımı tanıyamadı. Lütfen daha detaylı açıklama yapın."
	unknownTitle         = "Bilinmiyor"

	healthServiceName = "semantic-search"

	answerTemperature = 0.2
	answerMaxTokens   = 400

	logModule = "AI_SERVICE"
)

const answerSystemPrompt = "Sen Saga platformunun yerel yapay zekasısın. Kullanıcı bir film/kitap/dizi anlatımı yapar. " +
	"Aşağıda verilen aday listesi DIŞINA çıkma. En uygun tek sonucu seç ve kısa, net bir Türkçe cevap ver. " +
	"Eğer adaylar yetersizse 'Bulamadım' de."

// SemanticGateway is the part of semantic.Client the service calls.
type SemanticGateway interface {
	Search(ctx context.Context, query string, limit int, kind *string) semantic.Result[[]semantic.Match]
	Index(ctx context.Context, docs []semantic.IndexDocument) semantic.Result[int]
	Healthy(ctx context.Context) semantic.Result[bool]
	Identify(ctx context.Context, description string, kind *string) semantic.Result[semantic.IdentifyResult]
	Chat(ctx context.Context, turns []semantic.ChatTurn, chatContext *string) semantic.Result[semantic.ChatResult]
	AskAboutContent(ctx context.Context, title, contentType, question string, description *string) semantic.Result[semantic.ContentAnswer]
	Assistant(ctx context.Context, query string, currentPage *string, userContext interface{}, history []semantic.ChatTurn) semantic.Result[semantic.AssistantResult]
	Summarize(ctx context.Context, title, contentType string, spoilerFree bool) semantic.Result[semantic.SummaryResult]
}

// EventPublisher is satisfied by *nats.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IAiService interface {
	Ask(ctx context.Context, auth serverutils.AuthContext, req *dto.AskRequest) (*dto.AskResponse, error)
	Identify(ctx context.Context, auth serverutils.AuthContext, req *dto.IdentifyRequest) (*dto.IdentifyResponse, error)
	SemanticSearch(ctx context.Context, auth serverutils.AuthContext, req *dto.SemanticSearchRequest) (*dto.SemanticSearchResponse, error)
	Health(ctx context.Context) *dto.HealthResponse

	Chat(ctx context.Context, auth serverutils.AuthContext, req *dto.ChatRequest) (*dto.ChatResponse, error)
	ContentQuestion(ctx context.Context, auth serverutils.AuthContext, req *dto.ContentQuestionRequest) (*dto.ContentQuestionResponse, error)
	Assistant(ctx context.Context, auth serverutils.AuthContext, req *dto.AssistantRequest) (*dto.AssistantResponse, error)
	ContentSummary(ctx context.Context, auth serverutils.AuthContext, contentId int64, spoilerFree bool) (*dto.ContentSummaryResponse, error)

	Summary(ctx context.Context, auth serverutils.AuthContext, year int) (*dto.SummaryResponse, error)
	YearlySummary(ctx context.Context, auth serverutils.AuthContext, year *int) (*dto.YearlySummaryResponse, error)

	UpdateIndex(ctx context.Context, auth serverutils.AuthContext, async bool) (*dto.UpdateIndexResponse, error)
	BookSearch(ctx context.Context, query string, limit int) (*dto.BookSearchResponse, error)
}

// AiServiceDeps groups the collaborators. Answerer, Movies, Books, caches,
// IndexQueue, Indexer and Events may be nil; the matching stage is then
// skipped or built from the other deps.
type AiServiceDeps struct {
	UowFactory   unitofwork.RepositoryFactory
	Gateway      SemanticGateway
	Answerer     llm.LLMProvider
	Composer     *narrative.Composer
	Movies       catalog.MovieCatalog
	Books        catalog.BookCatalog
	CatalogCache *memory.CatalogCache
	SummaryCache *store.SummaryCache
	IndexQueue   IPublisherService
	Indexer      *ContentIndexer
	Events       EventPublisher
	Logger       logger.ILogger
	Location     *time.Location
	Now          func() time.Time
}

type aiService struct {
	uowFactory   unitofwork.RepositoryFactory
	gateway      SemanticGateway
	answerer     llm.LLMProvider
	composer     *narrative.Composer
	movies       catalog.MovieCatalog
	books        catalog.BookCatalog
	catalogCache *memory.CatalogCache
	summaryCache *store.SummaryCache
	indexQueue   IPublisherService
	indexer      *ContentIndexer
	logger       logger.ILogger
	location     *time.Location
	now          func() time.Time
}

func NewAiService(deps AiServiceDeps) IAiService {
	s := &aiService{
		uowFactory:   deps.UowFactory,
		gateway:      deps.Gateway,
		answerer:     deps.Answerer,
		composer:     deps.Composer,
		movies:       deps.Movies,
		books:        deps.Books,
		catalogCache: deps.CatalogCache,
		summaryCache: deps.SummaryCache,
		indexQueue:   deps.IndexQueue,
		indexer:      deps.Indexer,
		logger:       deps.Logger,
		location:     deps.Location,
		now:          deps.Now,
	}
	if s.logger == nil {
		s.logger = logger.NewNopLogger()
	}
	if s.composer == nil {
		s.composer = narrative.NewComposer(nil, nil, s.logger)
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.indexer == nil {
		s.indexer = NewContentIndexer(deps.UowFactory, deps.Gateway, deps.Events, s.logger)
	}
	return s
}

func (s *aiService) searcher(ctx context.Context) *search.Searcher {
	return search.NewSearcher(s.uowFactory.NewUnitOfWork(ctx).ContentRepository(), s.logger)
}

// validateQuery rejects blank and one-character queries before any I/O.
func validateQuery(raw string, empty error) (string, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return "", empty
	}
	if utf8.RuneCountInString(q) < minQueryLength {
		return "", ErrQueryTooShort
	}
	return q, nil
}

// resolveKind prefers the explicit tur field and falls back to a /film,
// /dizi or /kitap prefix inside the query text.
func resolveKind(raw *string, query string) (*entity.Kind, string) {
	if raw != nil && strings.TrimSpace(*raw) != "" {
		return search.ParseKind(*raw), query
	}
	filters := search.ParseQuery(query)
	if filters.SearchQuery == "" {
		return filters.Kind, query
	}
	return filters.Kind, filters.SearchQuery
}

func (s *aiService) Ask(ctx context.Context, auth serverutils.AuthContext, req *dto.AskRequest) (*dto.AskResponse, error) {
	query, err := validateQuery(req.Query, ErrEmptyQuestion)
	if err != nil {
		return nil, err
	}
	kind, query := resolveKind(req.Kind, query)

	items, stage, err := s.searcher(ctx).Search(ctx, query, kind, search.RankedLimit)
	if err != nil {
		s.logger.Error(logModule, "Local search failed", map[string]interface{}{"op": "ask", "query": query, "error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrAskFailed, err)
	}
	metrics.RecordFallbackStage("ask_search", stage)

	candidates := search.Candidates(search.FilterKind(items, kind))

	answer := ""
	if len(candidates) > 0 {
		answer = s.generateAnswer(ctx, query, candidates)
	}
	if answer == "" {
		metrics.RecordFallbackStage("ask_answer", "canned")
		if len(candidates) > 0 {
			answer = answerClosestMatches
		} else {
			answer = answerNoMatch
		}
	} else {
		metrics.RecordFallbackStage("ask_answer", "llm")
	}

	matches := make([]dto.AiMatchDto, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, candidateToMatch(c))
	}

	return &dto.AskResponse{Answer: answer, Matches: matches}, nil
}

type promptCandidate struct {
	Id          int64   `json:"id"`
	Title       string  `json:"baslik"`
	Kind        string  `json:"tur"`
	ReleaseDate *string `json:"yayinTarihi"`
	Synopsis    string  `json:"aciklama"`
}

// generateAnswer returns "" whenever the answer provider is missing, fails
// or says nothing.
func (s *aiService) generateAnswer(ctx context.Context, query string, candidates []entity.SearchCandidate) string {
	if s.answerer == nil {
		return ""
	}

	payload := make([]promptCandidate, len(candidates))
	for i, c := range candidates {
		payload[i] = promptCandidate{
			Id:          c.Id,
			Title:       c.Title,
			Kind:        c.Kind.String(),
			ReleaseDate: formatDate(c.ReleaseDate),
			Synopsis:    c.Synopsis,
		}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}

	user := fmt.Sprintf("Kullanıcı sorusu: %s\nAdaylar: %s", query, raw)
	answer, err := s.answerer.Chat(ctx,
		[]llm.Message{llm.System(answerSystemPrompt), llm.User(user)},
		llm.WithTemperature(answerTemperature),
		llm.WithMaxTokens(answerMaxTokens),
	)
	if err != nil {
		s.logger.Warn(logModule, "Answer provider failed", map[string]interface{}{"provider": s.answerer.Name(), "error": err.Error()})
		return ""
	}
	return strings.TrimSpace(answer)
}

func (s *aiService) Identify(ctx context.Context, auth serverutils.AuthContext, req *dto.IdentifyRequest) (*dto.IdentifyResponse, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	r := s.gateway.Identify(ctx, description, trimmedOrNil(req.Kind))
	if !r.Ok() || !r.Value.Found {
		if r.Err != nil {
			s.logger.Warn(logModule, "Identify unavailable", map[string]interface{}{"error": r.Err.Error()})
		}
		metrics.RecordFallbackStage("identify", "not_found")
		return &dto.IdentifyResponse{
			Success:       false,
			Message:       identifyNotFound,
			SearchResults: []dto.AiMatchDto{},
		}, nil
	}

	identified := r.Value
	searchQuery := strings.TrimSpace(identified.SearchQuery)
	if searchQuery == "" {
		searchQuery = identified.Title
	}

	var results []dto.AiMatchDto
	var err error
	if k := search.ParseKind(identified.Kind); k != nil && *k == entity.KindBook {
		results, err = s.identifyBooks(ctx, searchQuery)
	} else {
		results, err = s.identifyScreen(ctx, searchQuery, identified.Kind)
	}
	if err != nil {
		s.logger.Error(logModule, "Identify search failed", map[string]interface{}{"query": searchQuery, "error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrIdentifyFailed, err)
	}

	title := identified.Title
	kind := identified.Kind
	explanation := strings.TrimSpace(identified.Explanation)
	if explanation == "" {
		explanation = fmt.Sprintf("%q olarak tanımlandı.", title)
	}
	return &dto.IdentifyResponse{
		Success:           true,
		Message:           explanation,
		IdentifiedTitle:   &title,
		IdentifiedTitleEn: identified.TitleEn,
		IdentifiedType:    &kind,
		IdentifiedYear:    identified.Year,
		Confidence:        identified.Confidence,
		Explanation:       explanation,
		SearchResults:     results,
	}, nil
}

// identifyScreen is the movie/series path: up to 5 local titles, padded
// from TMDB to 10 only when fewer than 5 were found locally.
func (s *aiService) identifyScreen(ctx context.Context, query, rawKind string) ([]dto.AiMatchDto, error) {
	kind := entity.KindMovie
	if k := search.ParseKind(rawKind); k != nil && *k == entity.KindSeries {
		kind = entity.KindSeries
	}

	local, err := s.searcher(ctx).SearchTitles(ctx, query, &kind, identifyLocalCap)
	if err != nil {
		return nil, err
	}
	results := make([]dto.AiMatchDto, 0, identifyTotalCap)
	for _, item := range local {
		results = append(results, contentToMatch(item))
	}
	if len(results) >= identifyLocalCap || s.movies == nil {
		metrics.RecordFallbackStage("identify", "local")
		return results, nil
	}

	external := s.searchScreenCatalog(ctx, query, kind)
	seen := map[string]bool{}
	for _, item := range local {
		if item.ExternalId != "" {
			seen[item.ExternalId] = true
		}
	}
	for _, item := range external {
		if len(results) >= identifyTotalCap {
			break
		}
		if item.ExternalId == "" || seen[item.ExternalId] {
			continue
		}
		seen[item.ExternalId] = true
		results = append(results, externalToMatch(item, kind))
	}
	metrics.RecordFallbackStage("identify", "external")
	return results, nil
}

// searchScreenCatalog never fails: catalog errors leave the local results as they are.
func (s *aiService) searchScreenCatalog(ctx context.Context, query string, kind entity.Kind) []catalog.Item {
	source := "tmdb_movie"
	if kind == entity.KindSeries {
		source = "tmdb_tv"
	}
	key := memory.CatalogKey(source, query, 1)
	if s.catalogCache != nil {
		if items, ok := s.catalogCache.Get(key); ok {
			return items
		}
	}

	var items []catalog.Item
	var err error
	if kind == entity.KindSeries {
		items, err = s.movies.SearchSeries(ctx, query, 1)
	} else {
		items, err = s.movies.SearchMovies(ctx, query, 1)
	}
	if err != nil {
		s.logger.Warn(logModule, "Catalog search failed", map[string]interface{}{"source": source, "query": query, "error": err.Error()})
		return nil
	}
	if s.catalogCache != nil {
		s.catalogCache.Save(key, items)
	}
	return items
}

// identifyBooks is the book path: local titles first, then the combined
// Google Books + Open Library search, skipping duplicates.
func (s *aiService) identifyBooks(ctx context.Context, query string) ([]dto.AiMatchDto, error) {
	kind := entity.KindBook
	local, err := s.searcher(ctx).SearchTitles(ctx, query, &kind, identifyLocalCap)
	if err != nil {
		return nil, err
	}
	results := make([]dto.AiMatchDto, 0, identifyTotalCap)
	seenTitles := map[string]bool{}
	for _, item := range local {
		results = append(results, contentToMatch(item))
		seenTitles[strings.ToLower(strings.TrimSpace(item.Title))] = true
	}
	if len(results) >= identifyLocalCap || s.books == nil {
		metrics.RecordFallbackStage("identify", "local")
		return results, nil
	}

	external, err := s.searchBookCatalog(ctx, query, identifyTotalCap)
	if err != nil {
		s.logger.Warn(logModule, "Book catalog search failed", map[string]interface{}{"query": query, "error": err.Error()})
		return results, nil
	}

	seenExternal := map[string]bool{}
	for _, item := range external {
		if len(results) >= identifyTotalCap {
			break
		}
		titleKey := strings.ToLower(strings.TrimSpace(item.Title))
		if item.ExternalId == "" || seenExternal[item.ExternalId] || seenTitles[titleKey] {
			continue
		}
		seenExternal[item.ExternalId] = true
		results = append(results, externalToMatch(item, entity.KindBook))
	}
	metrics.RecordFallbackStage("identify", "external")
	return results, nil
}

func (s *aiService) searchBookCatalog(ctx context.Context, query string, limit int) ([]catalog.Item, error) {
	key := memory.CatalogKey("books", query, limit)
	if s.catalogCache != nil {
		if items, ok := s.catalogCache.Get(key); ok {
			return items, nil
		}
	}
	items, err := s.books.SearchBooks(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if s.catalogCache != nil {
		s.catalogCache.Save(key, items)
	}
	return items, nil
}

func (s *aiService) SemanticSearch(ctx context.Context, auth serverutils.AuthContext, req *dto.SemanticSearchRequest) (*dto.SemanticSearchResponse, error) {
	query, err := validateQuery(req.Query, ErrEmptyQuery)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = semanticDefaultLimit
	}
	if limit > semanticMaxLimit {
		limit = semanticMaxLimit
	}

	r := s.gateway.Search(ctx, query, limit, trimmedOrNil(req.Kind))
	if r.Ok() && len(r.Value) > 0 {
		metrics.RecordFallbackStage("semantic_search", "semantic")
		return &dto.SemanticSearchResponse{Success: true, Query: query, Source: "semantic", Results: r.Value}, nil
	}
	if r.Err != nil {
		s.logger.Warn(logModule, "Semantic search unavailable, using full-text", map[string]interface{}{"query": query, "error": r.Err.Error()})
	}

	var kind *entity.Kind
	if req.Kind != nil {
		kind = search.ParseKind(*req.Kind)
	}
	items, err := s.searcher(ctx).RankedOnly(ctx, query, kind, limit)
	if err != nil {
		s.logger.Error(logModule, "Full-text fallback failed", map[string]interface{}{"query": query, "error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	results := make([]semantic.Match, 0, len(items))
	for _, item := range items {
		results = append(results, ftsMatch(item))
	}
	metrics.RecordFallbackStage("semantic_search", "fts")
	return &dto.SemanticSearchResponse{Success: true, Query: query, Source: "fts", Results: results}, nil
}

func (s *aiService) Health(ctx context.Context) *dto.HealthResponse {
	status := "unavailable"
	if r := s.gateway.Healthy(ctx); r.Ok() && r.Value {
		status = "healthy"
	}
	return &dto.HealthResponse{Status: status, Service: healthServiceName, Timestamp: s.now().UTC()}
}

func candidateToMatch(c entity.SearchCandidate) dto.AiMatchDto {
	return dto.AiMatchDto{
		Id:          c.Id,
		Title:       c.Title,
		Kind:        c.Kind.String(),
		ReleaseDate: formatDate(c.ReleaseDate),
		PosterUrl:   optional(c.PosterUrl),
	}
}

func contentToMatch(item *entity.ContentItem) dto.AiMatchDto {
	return candidateToMatch(item.ToCandidate())
}

// externalToMatch maps a catalog hit that has no local row: id 0 plus the
// external id it can later be imported by.
func externalToMatch(item catalog.Item, kind entity.Kind) dto.AiMatchDto {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = unknownTitle
	}
	externalId := item.ExternalId
	m := dto.AiMatchDto{
		Id:          0,
		Title:       title,
		Kind:        kind.String(),
		ReleaseDate: optional(item.ReleaseDate),
		PosterUrl:   optional(item.PosterUrl),
		ExternalId:  &externalId,
		Source:      string(item.Source),
	}
	if item.Source == catalog.SourceTmdb {
		m.TmdbId = &externalId
	}
	return m
}

func ftsMatch(item *entity.ContentItem) semantic.Match {
	rating := item.AverageRating
	return semantic.Match{
		Id:        item.Id,
		Title:     item.Title,
		Kind:      item.Kind.String(),
		Synopsis:  item.Synopsis,
		Year:      item.ReleaseYear(),
		PosterUrl: optional(item.PosterUrl),
		Rating:    &rating,
		Score:     ftsScore,
		Reason:    ftsReason,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
