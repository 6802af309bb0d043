package service

import (
	"context"
	"fmt"
	"strings"

	"saga-be/internal/dto"
	"saga-be/internal/entity"
	"saga-be/internal/pkg/serverutils"
	"saga-be/internal/repository/specification"
	"saga-be/pkg/semantic"
)

const (
	defaultContentType = "film"
	recentTitlesCount  = 5
)

func toTurns(messages []dto.ChatMessage) []semantic.ChatTurn {
	if len(messages) == 0 {
		return nil
	}
	turns := make([]semantic.ChatTurn, len(messages))
	for i, m := range messages {
		turns[i] = semantic.ChatTurn{Role: m.Role, Content: m.Content}
	}
	return turns
}

func (s *aiService) Chat(ctx context.Context, auth serverutils.AuthContext, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, ErrNoMessages
	}

	res := semantic.ChatOrApology(s.gateway.Chat(ctx, toTurns(req.Messages), trimmedOrNil(req.Context)))
	return &dto.ChatResponse{Message: res.Message, Suggestions: res.Suggestions}, nil
}

// ContentQuestion answers a question about one title. A known contentId
// replaces the caller-supplied title, type and description.
func (s *aiService) ContentQuestion(ctx context.Context, auth serverutils.AuthContext, req *dto.ContentQuestionRequest) (*dto.ContentQuestionResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	title := req.ContentTitle
	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		contentType = defaultContentType
	}
	description := req.ContentDescription

	if req.ContentId != nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		item, err := uow.ContentRepository().FindOne(ctx, specification.ByID{ID: *req.ContentId})
		if err != nil {
			s.logger.Error(logModule, "Content lookup failed", map[string]interface{}{"content_id": *req.ContentId, "error": err.Error()})
			return nil, fmt.Errorf("%w: %v", ErrContentQuestionFailed, err)
		}
		if item != nil {
			title = item.Title
			contentType = item.Kind.String()
			description = optional(item.Synopsis)
		}
	}

	res := semantic.AnswerOrApology(s.gateway.AskAboutContent(ctx, title, contentType, question, description))
	return &dto.ContentQuestionResponse{Answer: res.Answer, RelatedQuestions: res.RelatedQuestions}, nil
}

func (s *aiService) Assistant(ctx context.Context, auth serverutils.AuthContext, req *dto.AssistantRequest) (*dto.AssistantResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyAssistant
	}

	var userContext interface{}
	if auth.Authenticated {
		uc, err := s.assistantContext(ctx, auth)
		if err != nil {
			s.logger.Error(logModule, "Assistant context failed", map[string]interface{}{"user_id": auth.UserId.String(), "error": err.Error()})
			return nil, fmt.Errorf("%w: %v", ErrAssistantFailed, err)
		}
		if uc != nil {
			userContext = uc
		}
	}

	res := semantic.AssistantOrApology(s.gateway.Assistant(ctx, query, trimmedOrNil(req.CurrentPage), userContext, toTurns(req.ChatHistory)))
	return &dto.AssistantResponse{
		Message:     res.Message,
		Action:      res.Action,
		ActionData:  res.ActionData,
		Suggestions: res.Suggestions,
	}, nil
}

// assistantContext returns nil when the token names a user that no longer exists.
func (s *aiService) assistantContext(ctx context.Context, auth serverutils.AuthContext) (*dto.AssistantUserContext, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUUID{ID: auth.UserId})
	if err != nil || user == nil {
		return nil, err
	}

	entries, err := uow.LibraryRepository().FindAll(ctx,
		specification.OwnedBy{UserID: auth.UserId},
		specification.WithContent{},
		specification.Pagination{Limit: recentTitlesCount},
	)
	if err != nil {
		return nil, err
	}

	return &dto.AssistantUserContext{Username: user.Username, RecentTitles: recentTitles(entries)}, nil
}

func recentTitles(entries []*entity.LibraryEntry) []string {
	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Content != nil {
			titles = append(titles, e.Content.Title)
		}
	}
	return titles
}

// ContentSummary serves the redis copy when present; only successful
// gateway summaries are cached.
func (s *aiService) ContentSummary(ctx context.Context, auth serverutils.AuthContext, contentId int64, spoilerFree bool) (*dto.ContentSummaryResponse, error) {
	if contentId <= 0 {
		return nil, ErrInvalidContentId
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	item, err := uow.ContentRepository().FindOne(ctx, specification.ByID{ID: contentId}, specification.NotDeleted{})
	if err != nil {
		s.logger.Error(logModule, "Content lookup failed", map[string]interface{}{"content_id": contentId, "error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrContentSumFailed, err)
	}
	if item == nil {
		return nil, ErrContentNotFound
	}

	resp := &dto.ContentSummaryResponse{
		ContentId:   contentId,
		Title:       item.Title,
		Type:        item.Kind.String(),
		SpoilerFree: spoilerFree,
	}

	cached, found, err := s.summaryCache.Get(ctx, contentId, spoilerFree)
	if err != nil {
		s.logger.Warn(logModule, "Summary cache read failed", map[string]interface{}{"content_id": contentId, "error": err.Error()})
	}
	if found {
		resp.Summary = cached
		resp.Cached = true
		return resp, nil
	}

	r := s.gateway.Summarize(ctx, item.Title, item.Kind.String(), spoilerFree)
	resp.Summary = semantic.SummaryOrApology(r, spoilerFree).Summary
	if r.Ok() && strings.TrimSpace(r.Value.Summary) != "" {
		if err := s.summaryCache.Set(ctx, contentId, spoilerFree, resp.Summary); err != nil {
			s.logger.Warn(logModule, "Summary cache write failed", map[string]interface{}{"content_id": contentId, "error": err.Error()})
		}
	}
	return resp, nil
}
