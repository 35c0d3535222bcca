package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"github.com/saeid-a/AtlasCoachBack/pkg/utils"
)

type profileReader interface {
	GetByPhone(ctx context.Context, phone string) (*models.UserProfile, error)
}

type accountStore interface {
	Onboard(ctx context.Context, profile models.UserProfile) (*models.UserProfile, *models.RegisteredUser, error)
	ReplaceProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error)
	Purge(ctx context.Context, phone string) error
}

type ProfileService struct {
	profiles profileReader
	accounts accountStore
}

func NewProfileService(profiles profileReader, accounts accountStore) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		accounts: accounts,
	}
}

// Onboard stores a new profile and registers the phone if it is not in the
// registry yet.
func (s *ProfileService) Onboard(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	normalized, err := normalizeProfile(profile)
	if err != nil {
		return nil, err
	}

	_, err = s.profiles.GetByPhone(ctx, normalized.Phone)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	created, _, err := s.accounts.Onboard(ctx, normalized)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrConflict
		}
		return nil, err
	}
	return created, nil
}

func (s *ProfileService) Get(ctx context.Context, phone string) (*models.UserProfile, error) {
	profile, err := s.profiles.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Update replaces the profile of phone. The phone itself cannot change, and
// saving clears the plans generated from the previous answers.
func (s *ProfileService) Update(ctx context.Context, phone string, profile models.UserProfile) (*models.UserProfile, error) {
	profile.Phone = phone
	normalized, err := normalizeProfile(profile)
	if err != nil {
		return nil, err
	}

	updated, err := s.accounts.ReplaceProfile(ctx, normalized)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Logout forgets everything about the phone except its registry entry.
func (s *ProfileService) Logout(ctx context.Context, phone string) error {
	if strings.TrimSpace(phone) == "" {
		return ErrInvalidInput
	}
	return s.accounts.Purge(ctx, phone)
}

func normalizeProfile(profile models.UserProfile) (models.UserProfile, error) {
	profile.Phone = utils.NormalizePhone(profile.Phone)
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Sex = strings.ToLower(strings.TrimSpace(profile.Sex))
	profile.Experience = strings.ToLower(strings.TrimSpace(profile.Experience))
	profile.Goal = strings.TrimSpace(profile.Goal)
	profile.RoutineType = strings.TrimSpace(profile.RoutineType)
	profile.Injuries = strings.TrimSpace(profile.Injuries)

	if profile.Phone == "" || profile.Name == "" || profile.Goal == "" || profile.RoutineType == "" {
		return profile, ErrInvalidInput
	}
	if profile.Sex != models.SexMale && profile.Sex != models.SexFemale {
		return profile, ErrInvalidInput
	}
	switch profile.Experience {
	case models.ExperienceBeginner, models.ExperienceIntermediate, models.ExperienceAdvanced:
	default:
		return profile, ErrInvalidInput
	}
	if profile.Age <= 0 || profile.WeightKG <= 0 || profile.HeightCM <= 0 {
		return profile, ErrInvalidInput
	}
	if profile.Availability < 1 || profile.Availability > 7 {
		return profile, ErrInvalidInput
	}
	return profile, nil
}
