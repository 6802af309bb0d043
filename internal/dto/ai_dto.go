package dto

import (
	"time"

	"saga-be/pkg/catalog"
	"saga-be/pkg/narrative"
	"saga-be/pkg/semantic"
)

// AiMatchDto is a content item as shown in AI result lists. External
// catalog hits carry Id 0 and their external id.
type AiMatchDto struct {
	Id          int64   `json:"id"`
	Title       string  `json:"baslik"`
	Kind        string  `json:"tur"`
	ReleaseDate *string `json:"yayinTarihi"`
	PosterUrl   *string `json:"posterUrl"`
	TmdbId      *string `json:"tmdbId,omitempty"`
	ExternalId  *string `json:"externalId,omitempty"`
	Source      string  `json:"kaynak,omitempty"`
}

type AskRequest struct {
	Query string  `json:"query" validate:"max=500"`
	Kind  *string `json:"tur"`
}

type AskResponse struct {
	Answer  string       `json:"answer"`
	Matches []AiMatchDto `json:"matches"`
}

type IdentifyRequest struct {
	Description string  `json:"description" validate:"max=2000"`
	Kind        *string `json:"tur"`
}

type IdentifyResponse struct {
	Success           bool         `json:"success"`
	Message           string       `json:"message"`
	IdentifiedTitle   *string      `json:"identifiedTitle"`
	IdentifiedTitleEn *string      `json:"identifiedTitleEn"`
	IdentifiedType    *string      `json:"identifiedType"`
	IdentifiedYear    *int         `json:"identifiedYear"`
	Confidence        float64      `json:"confidence"`
	Explanation       string       `json:"explanation,omitempty"`
	SearchResults     []AiMatchDto `json:"searchResults"`
}

type SemanticSearchRequest struct {
	Query string  `json:"query" validate:"max=500"`
	Limit int     `json:"limit" validate:"gte=0,lte=50"`
	Kind  *string `json:"tur"`
}

type SemanticSearchResponse struct {
	Success bool             `json:"success"`
	Query   string           `json:"query"`
	Source  string           `json:"source"`
	Results []semantic.Match `json:"results"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"dive"`
	Context  *string       `json:"context"`
}

type ChatResponse struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type ContentQuestionRequest struct {
	ContentId          *int64  `json:"contentId"`
	ContentTitle       string  `json:"contentTitle"`
	ContentType        string  `json:"contentType"`
	ContentDescription *string `json:"contentDescription"`
	Question           string  `json:"question" validate:"max=1000"`
}

type ContentQuestionResponse struct {
	Answer           string   `json:"answer"`
	RelatedQuestions []string `json:"relatedQuestions,omitempty"`
}

type AssistantRequest struct {
	Query       string        `json:"query" validate:"max=1000"`
	CurrentPage *string       `json:"currentPage"`
	ChatHistory []ChatMessage `json:"chatHistory" validate:"dive"`
}

// AssistantUserContext is sent to the gateway for signed-in callers.
type AssistantUserContext struct {
	Username     string   `json:"kullaniciAdi"`
	RecentTitles []string `json:"sonIzlenenler"`
}

type AssistantResponse struct {
	Message     string                 `json:"message"`
	Action      *string                `json:"action,omitempty"`
	ActionData  map[string]interface{} `json:"actionData,omitempty"`
	Suggestions []string               `json:"suggestions,omitempty"`
}

type ContentSummaryResponse struct {
	ContentId   int64  `json:"contentId"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Summary     string `json:"summary"`
	SpoilerFree bool   `json:"spoilerFree"`
	Cached      bool   `json:"cached"`
}

type SummaryResponse struct {
	Year          int                   `json:"year"`
	Title         string                `json:"title"`
	Narrative     string                `json:"narrative"`
	Stats         narrative.YearlyStats `json:"stats"`
	GeneratedByAi bool                  `json:"generatedByAi"`
}

type YearlySummaryResponse struct {
	Year          int                    `json:"year"`
	Summary       string                 `json:"summary"`
	Stats         narrative.YearlyDigest `json:"stats"`
	GeneratedByAi bool                   `json:"generatedByAi"`
}

type UpdateIndexResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
	Async   bool   `json:"async"`
}

// IndexJobMessage is the payload of the asynchronous index job.
type IndexJobMessage struct {
	RequestedBy string    `json:"requestedBy"`
	RequestedAt time.Time `json:"requestedAt"`
}

type BookSearchResponse struct {
	Query string         `json:"query"`
	Items []catalog.Item `json:"items"`
}
