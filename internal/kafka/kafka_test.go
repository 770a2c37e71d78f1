package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingEvent(t *testing.T) {
	b := &domain.Booking{
		ID:        "b1",
		VehicleID: "v1",
		Customer:  "Sara",
		Email:     "sara@example.com",
		StartDate: domain.NewDate(2025, time.June, 1),
		EndDate:   domain.NewDate(2025, time.June, 3),
		Status:    domain.BookingStatusActive,
		TotalCost: 900,
	}

	event := NewBookingEvent(EventBookingCreated, b)

	assert.Equal(t, EventBookingCreated, event.Type)
	assert.Equal(t, "b1", event.BookingID)
	assert.Equal(t, "Active", event.Status)
	assert.False(t, event.OccurredAt.IsZero())

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"start_date":"2025-06-01"`)
}

func TestBookingEventHandler(t *testing.T) {
	var got []BookingEvent
	handler := BookingEventHandler(func(_ context.Context, e BookingEvent) error {
		got = append(got, e)
		return nil
	})

	payload, err := json.Marshal(BookingEvent{Type: EventBookingEnd, BookingID: "b9"})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), kafka.Message{Value: []byte("{broken")}))
	require.NoError(t, handler(context.Background(), kafka.Message{Value: payload}))

	require.Len(t, got, 1)
	assert.Equal(t, "b9", got[0].BookingID)
	assert.Equal(t, EventBookingEnd, got[0].Type)
}

func TestProducer_CheckConnectionWithoutBrokers(t *testing.T) {
	p := NewProducer(nil)
	defer p.Close()
	assert.Error(t, p.CheckConnection(context.Background()))
}
