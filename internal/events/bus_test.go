package events

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestPublishReachesEverySubscriber(t *testing.T) {
	bus := NewEventBus[any]()
	a := bus.Subscribe()
	b := bus.Subscribe()

	dropped := bus.Publish(ReplySent{SenderID: "u1", Outcome: "generated"})

	assert.Zero(t, dropped)
	assert.Equal(t, ReplySent{SenderID: "u1", Outcome: "generated"}, <-a)
	assert.Equal(t, ReplySent{SenderID: "u1", Outcome: "generated"}, <-b)
}

func TestPublishDropsWhenBufferIsFull(t *testing.T) {
	bus := NewEventBus[int]()
	sub := bus.Subscribe()

	for i := 0; i < subscriberBuffer; i++ {
		assert.Zero(t, bus.Publish(i))
	}
	assert.Equal(t, 1, bus.Publish(subscriberBuffer))
	assert.Len(t, sub, subscriberBuffer)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewEventBus[any]()
	sub := bus.Subscribe()

	assert.Equal(t, 1, bus.Subscribers())
	bus.Unsubscribe(sub)
	bus.Unsubscribe(sub)
	assert.Zero(t, bus.Subscribers())

	_, open := <-sub
	assert.False(t, open)
	assert.Zero(t, bus.Publish(MessageReceived{SenderID: "u1"}))
}
