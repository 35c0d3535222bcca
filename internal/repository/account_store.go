package repository

import (
	"context"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

// AccountStore groups the profile writes that must commit together.
type AccountStore struct {
	db TxBeginner
}

func NewAccountStore(db TxBeginner) *AccountStore {
	return &AccountStore{db: db}
}

// Onboard creates the profile and registers the phone when it is not in the
// registry yet. An existing registry entry keeps its status and date.
func (s *AccountStore) Onboard(
	ctx context.Context,
	profile models.UserProfile,
) (*models.UserProfile, *models.RegisteredUser, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	created, err := NewUserProfileRepository(tx).Create(ctx, profile)
	if err != nil {
		return nil, nil, err
	}

	registered, err := NewRegistryRepository(tx).RegisterIfAbsent(ctx, created.Phone, created.Name)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return created, registered, nil
}

// ReplaceProfile saves the profile, mirrors the name into the registry and
// drops the plans and checklist marks derived from the previous profile.
func (s *AccountStore) ReplaceProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	updated, err := NewUserProfileRepository(tx).Replace(ctx, profile)
	if err != nil {
		return nil, err
	}
	if err := NewRegistryRepository(tx).UpdateName(ctx, updated.Phone, updated.Name); err != nil {
		return nil, err
	}
	if err := NewPlanRepository(tx).Delete(ctx, updated.Phone); err != nil {
		return nil, err
	}
	if err := NewCompletionRepository(tx).DeleteAll(ctx, updated.Phone); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// Purge removes everything tied to the phone except its registry entry.
func (s *AccountStore) Purge(ctx context.Context, phone string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := NewWorkoutLogRepository(tx).DeleteAll(ctx, phone); err != nil {
		return err
	}
	if err := NewPlanRepository(tx).Delete(ctx, phone); err != nil {
		return err
	}
	if err := NewCompletionRepository(tx).DeleteAll(ctx, phone); err != nil {
		return err
	}
	if err := NewCoachMessageRepository(tx).DeleteAll(ctx, phone); err != nil {
		return err
	}
	if err := NewUserProfileRepository(tx).Delete(ctx, phone); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
