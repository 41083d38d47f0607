package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-event-push/internal/infrastructure/logger"
)

func TestBus_PublishNotifiesAllSubscribersInOrder(t *testing.T) {
	b := New(logger.NewNopLogger())

	var first, second []string
	b.Subscribe(func(e Event) { first = append(first, e.Topic) })
	b.Subscribe(func(e Event) { second = append(second, e.Topic) })

	b.Publish(NewEvent("a", nil))
	b.Publish(NewEvent("b", nil))
	b.Publish(NewEvent("c", nil))

	assert.Equal(t, []string{"a", "b", "c"}, first)
	assert.Equal(t, []string{"a", "b", "c"}, second)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	b := New(logger.NewNopLogger())
	b.Publish(NewEvent("ignored", nil)) // must not panic
}

func TestNewEvent(t *testing.T) {
	e := NewEvent("topic", map[string]string{"k": "v"})
	require.NotEmpty(t, e.ID)
	assert.Equal(t, "topic", e.Topic)
	assert.False(t, e.Time.IsZero())

	other := NewEvent("topic", nil)
	assert.NotEqual(t, e.ID, other.ID)
}
