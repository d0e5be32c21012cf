package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	kafkamocks "github.com/honeynil/TokenWalletPayments/internal/infrastructure/kafka/mocks"
	"github.com/honeynil/TokenWalletPayments/internal/models"
	repositorymocks "github.com/honeynil/TokenWalletPayments/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
)

func TestOutboxRelay_RelayOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	outboxRepo := repositorymocks.NewMockOutboxRepository(ctrl)
	producer := kafkamocks.NewMockKafkaProducer(ctrl)
	relay := NewOutboxRelay(outboxRepo, producer, time.Second)
	ctx := context.Background()

	events := []models.OutboxEvent{
		{ID: 1, Topic: "purchase-transactions", Key: "tx-1", Payload: json.RawMessage(`{"n":1}`)},
		{ID: 2, Topic: "purchase-transactions", Key: "tx-2", Payload: json.RawMessage(`{"n":2}`)},
	}

	t.Run("publishes every event", func(t *testing.T) {
		outboxRepo.EXPECT().PublishPending(gomock.Any(), outboxBatchSize, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int, publish func(models.OutboxEvent) error) (int, error) {
				for _, e := range events {
					if err := publish(e); err != nil {
						return 0, err
					}
				}
				return len(events), nil
			})
		producer.EXPECT().Send(gomock.Any(), "purchase-transactions", "tx-1", []byte(`{"n":1}`)).Return(nil)
		producer.EXPECT().Send(gomock.Any(), "purchase-transactions", "tx-2", []byte(`{"n":2}`)).Return(nil)

		sent, err := relay.RelayOnce(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
	})

	t.Run("producer error surfaces", func(t *testing.T) {
		brokerErr := errors.New("broker unavailable")
		outboxRepo.EXPECT().PublishPending(gomock.Any(), outboxBatchSize, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int, publish func(models.OutboxEvent) error) (int, error) {
				return 0, publish(events[0])
			})
		producer.EXPECT().Send(gomock.Any(), "purchase-transactions", "tx-1", gomock.Any()).Return(brokerErr)

		sent, err := relay.RelayOnce(ctx)
		assert.ErrorIs(t, err, brokerErr)
		assert.Zero(t, sent)
	})
}

func TestOutboxRelay_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	outboxRepo := repositorymocks.NewMockOutboxRepository(ctrl)
	producer := kafkamocks.NewMockKafkaProducer(ctrl)
	relay := NewOutboxRelay(outboxRepo, producer, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	outboxRepo.EXPECT().PublishPending(gomock.Any(), outboxBatchSize, gomock.Any()).
		DoAndReturn(func(context.Context, int, func(models.OutboxEvent) error) (int, error) {
			cancel()
			return 0, nil
		}).MinTimes(1)

	done := make(chan struct{})
	go func() {
		relay.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop after cancel")
	}
}
