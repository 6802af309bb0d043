package semantic

// Match is one semantic search hit. Field names follow the gateway wire format.
type Match struct {
	Id        int64    `json:"id"`
	Title     string   `json:"baslik"`
	Kind      string   `json:"tur"`
	Synopsis  string   `json:"aciklama"`
	Year      *int     `json:"yil,omitempty"`
	PosterUrl *string  `json:"posterUrl,omitempty"`
	Rating    *float64 `json:"puan,omitempty"`
	Score     float64  `json:"score"`
	Reason    string   `json:"neden"`
}

type searchRequest struct {
	Query string  `json:"query"`
	Limit int     `json:"limit"`
	Kind  *string `json:"tur,omitempty"`
}

type searchResponse struct {
	Results []Match `json:"results"`
	Query   string  `json:"query"`
	Total   int     `json:"total"`
}

// IndexDocument is one catalog row pushed to the gateway index.
type IndexDocument struct {
	Id        int64    `json:"id"`
	Title     string   `json:"baslik"`
	Kind      string   `json:"tur"`
	Synopsis  string   `json:"aciklama"`
	Year      *int     `json:"yil,omitempty"`
	PosterUrl *string  `json:"posterUrl,omitempty"`
	Rating    *float64 `json:"puan,omitempty"`
}

type indexRequest struct {
	Contents []IndexDocument `json:"contents"`
}

type identifyRequest struct {
	Description string  `json:"description"`
	Kind        *string `json:"tur,omitempty"`
}

// IdentifyResult is the gateway's guess for a free-text description.
type IdentifyResult struct {
	Found       bool    `json:"found"`
	Title       string  `json:"title"`
	TitleEn     *string `json:"title_en,omitempty"`
	Kind        string  `json:"tur"`
	Year        *int    `json:"year,omitempty"`
	Explanation string  `json:"explanation"`
	Confidence  float64 `json:"confidence"`
	SearchQuery string  `json:"search_query"`
}

// ChatTurn is one message of a conversation relayed to the gateway.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages  []ChatTurn `json:"messages"`
	Context   *string    `json:"context,omitempty"`
	MaxTokens int        `json:"max_tokens"`
}

type ChatResult struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type contentQuestionRequest struct {
	ContentTitle       string  `json:"content_title"`
	ContentType        string  `json:"content_type"`
	ContentDescription *string `json:"content_description,omitempty"`
	Question           string  `json:"question"`
}

type ContentAnswer struct {
	Answer           string   `json:"answer"`
	RelatedQuestions []string `json:"related_questions,omitempty"`
}

type assistantRequest struct {
	Query       string      `json:"query"`
	CurrentPage *string     `json:"current_page,omitempty"`
	UserContext interface{} `json:"user_context,omitempty"`
	ChatHistory []ChatTurn  `json:"chat_history,omitempty"`
}

type AssistantResult struct {
	Message     string                 `json:"message"`
	Action      *string                `json:"action,omitempty"`
	ActionData  map[string]interface{} `json:"action_data,omitempty"`
	Suggestions []string               `json:"suggestions,omitempty"`
}

type SummaryResult struct {
	Title       *string `json:"title,omitempty"`
	Type        *string `json:"type,omitempty"`
	Summary     string  `json:"summary"`
	SpoilerFree bool    `json:"spoiler_free"`
}
