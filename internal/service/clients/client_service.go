package clients

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrNameRequired  = errors.New("client name is required")
	ErrEmailRequired = errors.New("client email is required")
	ErrPhoneRequired = errors.New("client phone is required")
)

type ClientUseCase interface {
	List(ctx context.Context, search string) ([]ClientSummary, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, input ClientInput) (*domain.Client, error)
	Update(ctx context.Context, id string, input ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}

type ClientService struct {
	clients  repository.ClientRepository
	bookings repository.BookingRepository
}

type ClientInput struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	LicenseNumber string `json:"license_number"`
}

// ClientSummary is a client with the number of bookings made under it.
type ClientSummary struct {
	domain.Client
	Bookings int `json:"bookings"`
}

func NewClientService(clients repository.ClientRepository, bookings repository.BookingRepository) *ClientService {
	return &ClientService{clients: clients, bookings: bookings}
}

func (s *ClientService) List(ctx context.Context, search string) ([]ClientSummary, error) {
	clients, err := s.clients.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	if s.bookings != nil && len(clients) > 0 {
		bookings, err := s.bookings.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, b := range bookings {
			if b.ClientID != "" {
				counts[b.ClientID]++
			}
		}
	}

	result := make([]ClientSummary, 0, len(clients))
	for _, c := range clients {
		result = append(result, ClientSummary{Client: c, Bookings: counts[c.ID]})
	}
	return result, nil
}

func (s *ClientService) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, input ClientInput) (*domain.Client, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}
	client := &domain.Client{ID: uuid.NewString()}
	apply(client, input)

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id string, input ClientInput) (*domain.Client, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}
	client := &domain.Client{ID: id}
	apply(client, input)

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.clients.Delete(ctx, id)
}

func checkInput(input ClientInput) error {
	switch {
	case strings.TrimSpace(input.FirstName) == "" && strings.TrimSpace(input.LastName) == "":
		return ErrNameRequired
	case strings.TrimSpace(input.Email) == "":
		return ErrEmailRequired
	case strings.TrimSpace(input.Phone) == "":
		return ErrPhoneRequired
	}
	return nil
}

func apply(c *domain.Client, input ClientInput) {
	c.FirstName = strings.TrimSpace(input.FirstName)
	c.LastName = strings.TrimSpace(input.LastName)
	c.Email = strings.TrimSpace(input.Email)
	c.Phone = strings.TrimSpace(input.Phone)
	c.Address = strings.TrimSpace(input.Address)
	c.LicenseNumber = strings.TrimSpace(input.LicenseNumber)
}

var _ ClientUseCase = (*ClientService)(nil)
