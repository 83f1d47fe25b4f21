package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port/mocks"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error { return nil }

func TestNewPublisherRequiresBrokers(t *testing.T) {
	_, err := NewPublisher(nil, "x.")
	assert.Error(t, err)
}

func TestPublishRoutesByEventType(t *testing.T) {
	w := &recordingWriter{}
	p := &Publisher{writer: w, topicPrefix: "creator-ads."}

	require.NoError(t, p.Publish(context.Background(), domain.EventPayoutCredited, "m-1", []byte(`{}`)))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "creator-ads.payout.credited", w.msgs[0].Topic)
	assert.Equal(t, []byte("m-1"), w.msgs[0].Key)
	assert.Equal(t, []byte(domain.EventPayoutCredited), w.msgs[0].Headers[0].Value)
}

func TestPublishWrapsWriterErrors(t *testing.T) {
	boom := errors.New("leader not available")
	p := &Publisher{writer: &recordingWriter{err: boom}}

	err := p.Publish(context.Background(), domain.EventCampaignBudgetLow, "c", nil)
	assert.ErrorIs(t, err, boom)
}

func TestNotifierPublishesRequest(t *testing.T) {
	events := mocks.NewMockEventPublisher(t)
	n := NewNotifier(events)
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	n.nowFn = func() time.Time { return at }
	user := uuid.New()

	events.EXPECT().Publish(mock.Anything, domain.EventNotificationRequested, user.String(), mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, _ string, payload []byte) error {
			var got Notification
			require.NoError(t, json.Unmarshal(payload, &got))
			assert.Equal(t, Notification{UserID: user, Message: "hi", At: at}, got)
			return nil
		}).Once()

	require.NoError(t, n.Notify(context.Background(), user, "hi"))
}
