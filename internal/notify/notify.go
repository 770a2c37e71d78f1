package notify

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kafka"
)

// Sender delivers booking notifications. It writes them to a logger; there
// is no mail transport behind it.
type Sender struct {
	logger   *log.Logger
	currency string
}

type Option func(*Sender)

func WithLogger(logger *log.Logger) Option {
	return func(s *Sender) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithCurrency(currency string) Option {
	return func(s *Sender) {
		s.currency = currency
	}
}

func NewSender(opts ...Option) *Sender {
	s := &Sender{
		logger:   log.New(os.Stdout, "notify: ", log.LstdFlags),
		currency: domain.DefaultCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.Email == "" {
		s.logger.Printf("skip %s for booking %s: no email", event.Type, event.BookingID)
		return nil
	}
	s.logger.Printf("send email to %s: %s", event.Email, Message(event, s.currency))
	return nil
}

// Message is the human-readable text of a booking notification.
func Message(event kafka.BookingEvent, currency string) string {
	period := fmt.Sprintf("%s to %s", event.StartDate, event.EndDate)
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("booking %s confirmed for %s, %s", event.BookingID, period, domain.FormatPrice(event.TotalCost, currency))
	case kafka.EventBookingUpdated:
		return fmt.Sprintf("booking %s changed to %s, %s", event.BookingID, period, domain.FormatPrice(event.TotalCost, currency))
	case kafka.EventBookingCancelled:
		return fmt.Sprintf("booking %s for %s was cancelled", event.BookingID, period)
	case kafka.EventBookingStart:
		return fmt.Sprintf("booking %s starts today (%s)", event.BookingID, period)
	case kafka.EventBookingEnd:
		return fmt.Sprintf("booking %s ends today, please return the vehicle", event.BookingID)
	}
	return fmt.Sprintf("%s for booking %s", event.Type, event.BookingID)
}
