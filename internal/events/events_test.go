package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopPublish(t *testing.T) {
	t.Parallel()

	err := Noop{}.Publish(context.Background(), BookingEvent{Type: TypeReserved, BookingID: "b1"})
	assert.NoError(t, err)
}

func TestNewInvalidURL(t *testing.T) {
	t.Parallel()

	_, err := New("not-an-amqp-url", "booking.events")
	assert.Error(t, err)
}
