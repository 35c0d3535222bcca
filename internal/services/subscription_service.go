package services

import (
	"context"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusInactive = "inactive"
)

type statusReader interface {
	Status(ctx context.Context, phone string) (models.SubscriptionStatus, error)
}

type settingsReader interface {
	Get(ctx context.Context) (*models.AppSettings, error)
}

// SubscriptionService combines the registry status with the payment details
// shown to users whose subscription lapsed.
type SubscriptionService struct {
	statuses statusReader
	settings settingsReader
}

func NewSubscriptionService(statuses statusReader, settings settingsReader) *SubscriptionService {
	return &SubscriptionService{
		statuses: statuses,
		settings: settings,
	}
}

func (s *SubscriptionService) View(ctx context.Context, phone string) (*models.SubscriptionView, error) {
	status, err := s.statuses.Status(ctx, phone)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	view := &models.SubscriptionView{
		IsSubscribed:   status.IsSubscribed,
		Status:         SubscriptionStatusInactive,
		Price:          settings.SubscriptionPrice,
		PriceFormatted: FormatPrice(settings.SubscriptionPrice),
		PaymentLink:    settings.PaymentLink,
		AdminPhone:     settings.AdminPhone,
	}
	if status.IsSubscribed {
		view.Status = SubscriptionStatusActive
	}
	return view, nil
}

// Status satisfies the websocket hub, which pushes bare status updates.
func (s *SubscriptionService) Status(ctx context.Context, phone string) (models.SubscriptionStatus, error) {
	return s.statuses.Status(ctx, phone)
}
