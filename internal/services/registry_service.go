package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"github.com/saeid-a/AtlasCoachBack/pkg/utils"
)

type registryStore interface {
	GetByPhone(ctx context.Context, phone string) (*models.RegisteredUser, error)
	ToggleActive(ctx context.Context, phone string) (*models.RegisteredUser, error)
	List(ctx context.Context, filter string) ([]models.RegisteredUser, error)
}

type RegistryService struct {
	registry registryStore
}

func NewRegistryService(registry registryStore) *RegistryService {
	return &RegistryService{registry: registry}
}

// Status reports whether the phone may use subscriber features. A phone that
// never made it into the registry is treated as subscribed.
func (s *RegistryService) Status(ctx context.Context, phone string) (models.SubscriptionStatus, error) {
	status := models.SubscriptionStatus{Phone: phone, IsSubscribed: true}

	entry, err := s.registry.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return status, nil
		}
		return status, err
	}

	status.Registered = true
	status.IsSubscribed = entry.IsActive
	return status, nil
}

func (s *RegistryService) List(ctx context.Context, filter string) ([]models.RegisteredUser, error) {
	return s.registry.List(ctx, strings.TrimSpace(filter))
}

func (s *RegistryService) Toggle(ctx context.Context, phone string) (*models.RegisteredUser, error) {
	normalized := utils.NormalizePhone(phone)
	if normalized == "" {
		return nil, ErrInvalidInput
	}

	entry, err := s.registry.ToggleActive(ctx, normalized)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return entry, nil
}
