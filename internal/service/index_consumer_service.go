package service

import (
	"context"
	"errors"

	"saga-be/internal/dto"
	"saga-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

type IIndexConsumerService interface {
	Consume(ctx context.Context) error
}

type indexConsumerService struct {
	subscriber message.Subscriber
	topicName  string
	indexer    *ContentIndexer
	logger     logger.ILogger
}

func NewIndexConsumerService(
	subscriber message.Subscriber,
	topicName string,
	indexer *ContentIndexer,
	log logger.ILogger,
) IIndexConsumerService {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &indexConsumerService{
		subscriber: subscriber,
		topicName:  topicName,
		indexer:    indexer,
		logger:     log,
	}
}

// Consume subscribes and processes jobs in the background until ctx ends.
func (cs *indexConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: a failed push is logged and not retried,
// the admin can trigger a new run.
func (cs *indexConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var job dto.IndexJobMessage
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		cs.logger.Error("INDEX_CONSUMER", "Invalid index job payload", map[string]interface{}{"message_id": msg.UUID, "error": err.Error()})
		return
	}

	count, err := cs.indexer.Run(ctx, true)
	if err != nil {
		level := cs.logger.Error
		if errors.Is(err, ErrNothingToIndex) {
			level = cs.logger.Warn
		}
		level("INDEX_CONSUMER", "Index job failed", map[string]interface{}{
			"message_id":   msg.UUID,
			"requested_by": job.RequestedBy,
			"error":        err.Error(),
		})
		return
	}

	cs.logger.Info("INDEX_CONSUMER", "Index job done", map[string]interface{}{
		"message_id":   msg.UUID,
		"requested_by": job.RequestedBy,
		"documents":    count,
	})
}
