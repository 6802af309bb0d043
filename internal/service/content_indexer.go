package service

import (
	"context"
	"fmt"
	"time"

	"saga-be/internal/entity"
	"saga-be/internal/pkg/logger"
	"saga-be/internal/repository/specification"
	"saga-be/internal/repository/unitofwork"
	"saga-be/pkg/events"
	"saga-be/pkg/semantic"
)

// ContentIndexer pushes every non-deleted catalog row to the semantic
// gateway index. The HTTP handler and the index consumer share it.
type ContentIndexer struct {
	uowFactory unitofwork.RepositoryFactory
	gateway    SemanticGateway
	events     EventPublisher
	logger     logger.ILogger
	now        func() time.Time
}

func NewContentIndexer(uowFactory unitofwork.RepositoryFactory, gateway SemanticGateway, publisher EventPublisher, log logger.ILogger) *ContentIndexer {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ContentIndexer{uowFactory: uowFactory, gateway: gateway, events: publisher, logger: log, now: time.Now}
}

// Pending counts what a run would push.
func (i *ContentIndexer) Pending(ctx context.Context) (int, error) {
	n, err := i.uowFactory.NewUnitOfWork(ctx).ContentRepository().Count(ctx, specification.NotDeleted{})
	return int(n), err
}

// Run returns ErrNothingToIndex, ErrIndexFailed (gateway refused) or a
// wrapped ErrIndexUpdateFailed (database).
func (i *ContentIndexer) Run(ctx context.Context, async bool) (int, error) {
	items, err := i.uowFactory.NewUnitOfWork(ctx).ContentRepository().FindAll(ctx,
		specification.NotDeleted{},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIndexUpdateFailed, err)
	}
	if len(items) == 0 {
		return 0, ErrNothingToIndex
	}

	docs := make([]semantic.IndexDocument, len(items))
	for n, item := range items {
		docs[n] = indexDocument(item)
	}

	r := i.gateway.Index(ctx, docs)
	if !r.Ok() {
		i.logger.Error("INDEXER", "Gateway refused index push", map[string]interface{}{"documents": len(docs), "error": r.Err.Error()})
		return 0, fmt.Errorf("%w: %v", ErrIndexFailed, r.Err)
	}

	i.logger.Info("INDEXER", "Semantic index updated", map[string]interface{}{"documents": len(docs), "async": async})
	if i.events != nil {
		if err := i.events.Publish(ctx, events.NewAiIndexUpdated(len(docs), async, i.now())); err != nil {
			i.logger.Warn("INDEXER", "Index event not published", map[string]interface{}{"error": err.Error()})
		}
	}
	return len(docs), nil
}

func indexDocument(item *entity.ContentItem) semantic.IndexDocument {
	rating := item.AverageRating
	return semantic.IndexDocument{
		Id:        item.Id,
		Title:     item.Title,
		Kind:      item.Kind.String(),
		Synopsis:  item.Synopsis,
		Year:      item.ReleaseYear(),
		PosterUrl: optional(item.PosterUrl),
		Rating:    &rating,
	}
}
