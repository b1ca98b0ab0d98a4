package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventPointsAwarded, func(ctx context.Context, event Event) error {
		received = append(received, event)
		return nil
	})
	dispatcher.Subscribe(EventAchievementUnlocked, func(ctx context.Context, event Event) error {
		t.Fatal("handler for a different event type must not fire")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		Type:    EventPointsAwarded,
		UserID:  "agent-1",
		Payload: PointsAwardedPayload{Points: 20},
	})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "agent-1", received[0].UserID)
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	dispatcher.Subscribe(EventActivityRecorded, func(ctx context.Context, event Event) error {
		return errors.New("handler down")
	})
	called := false
	dispatcher.Subscribe(EventActivityRecorded, func(ctx context.Context, event Event) error {
		called = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventActivityRecorded})
	require.Error(t, err, "handler failures surface to the publisher")
	assert.True(t, called, "later handlers still run")
}

func TestDispatcherPublishWithoutSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	assert.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventStreakMilestone}))
}
