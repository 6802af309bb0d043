package service

import (
	"context"
	"testing"
	"time"

	"saga-be/internal/entity"
	"saga-be/internal/pkg/logger"
	"saga-be/pkg/semantic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "SEMANTIC_INDEX_CONTENT_TEST"

func TestIndexConsumer_RunsQueuedJob(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	f := newFixture(t, func(d *AiServiceDeps) {
		d.IndexQueue = NewPublisherService(testTopic, pubSub)
	})
	f.uow.content.all = contents(2, entity.KindSeries)
	f.uow.content.count = 2
	f.gateway.index = semantic.Result[int]{Value: 2}

	indexer := NewContentIndexer(&fakeFactory{uow: f.uow}, f.gateway, f.events, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, NewIndexConsumerService(pubSub, testTopic, indexer, nil).Consume(ctx))

	res, err := f.svc.UpdateIndex(ctx, admin, true)
	require.NoError(t, err)
	assert.True(t, res.Async)

	assert.Eventually(t, func() bool { return f.gateway.indexCallCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return f.events.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestIndexConsumer_AcksBadPayload(t *testing.T) {
	// Publish returns only once the subscriber has acked.
	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	defer pubSub.Close()

	gateway := &fakeGateway{}
	indexer := NewContentIndexer(&fakeFactory{uow: newFakeUow()}, gateway, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, NewIndexConsumerService(pubSub, testTopic, indexer, nil).Consume(ctx))

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	require.NoError(t, pubSub.Publish(testTopic, msg))

	assert.Zero(t, gateway.indexCallCount())
}
