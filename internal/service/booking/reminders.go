package booking

import (
	"context"
	"log"

	"github.com/Domenick1991/carrental/internal/activity"
	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kafka"
)

type ReminderUseCase interface {
	SendReminders(ctx context.Context) (int, error)
}

// SendReminders publishes booking_start and booking_end notifications for
// bookings that start or end today and returns how many were sent. Running
// it more than once a day repeats the reminders.
func (s *BookingService) SendReminders(ctx context.Context) (int, error) {
	today := s.today()
	bookings, err := s.bookings.ListTouchingDay(ctx, today)
	if err != nil {
		return 0, err
	}

	topic := s.notificationsTopic
	if topic == "" {
		topic = s.eventsTopic
	}
	if s.producer == nil || topic == "" {
		return 0, nil
	}

	starting, ending := activity.DueOn(bookings, today)
	sent := 0
	send := func(eventType string, list []domain.Booking) {
		for i := range list {
			b := &list[i]
			if err := s.producer.Publish(ctx, topic, b.ID, kafka.NewBookingEvent(eventType, b)); err != nil {
				log.Printf("WARNING: failed to publish %s for booking %s: %v", eventType, b.ID, err)
				continue
			}
			sent++
		}
	}
	send(kafka.EventBookingStart, starting)
	send(kafka.EventBookingEnd, ending)
	return sent, nil
}

var _ ReminderUseCase = (*BookingService)(nil)
