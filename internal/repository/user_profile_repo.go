package repository

import (
	"context"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

const userProfileColumns = `phone, name, sex, age, weight_kg, height_cm, experience, availability,
		goal, routine_type, injuries, created_at, updated_at`

type UserProfileRepository struct {
	db DBTX
}

func NewUserProfileRepository(db DBTX) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

func (r *UserProfileRepository) GetByPhone(ctx context.Context, phone string) (*models.UserProfile, error) {
	query := `SELECT ` + userProfileColumns + ` FROM user_profiles WHERE phone = $1`
	return scanUserProfile(r.db.QueryRow(ctx, query, phone))
}

func (r *UserProfileRepository) Create(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (phone, name, sex, age, weight_kg, height_cm, experience,
			availability, goal, routine_type, injuries)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + userProfileColumns
	return scanUserProfile(r.db.QueryRow(ctx, query,
		profile.Phone,
		profile.Name,
		profile.Sex,
		profile.Age,
		profile.WeightKG,
		profile.HeightCM,
		profile.Experience,
		profile.Availability,
		profile.Goal,
		profile.RoutineType,
		profile.Injuries,
	))
}

func (r *UserProfileRepository) Replace(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET name = $1,
			sex = $2,
			age = $3,
			weight_kg = $4,
			height_cm = $5,
			experience = $6,
			availability = $7,
			goal = $8,
			routine_type = $9,
			injuries = $10,
			updated_at = NOW()
		WHERE phone = $11
		RETURNING ` + userProfileColumns
	return scanUserProfile(r.db.QueryRow(ctx, query,
		profile.Name,
		profile.Sex,
		profile.Age,
		profile.WeightKG,
		profile.HeightCM,
		profile.Experience,
		profile.Availability,
		profile.Goal,
		profile.RoutineType,
		profile.Injuries,
		profile.Phone,
	))
}

func (r *UserProfileRepository) Delete(ctx context.Context, phone string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_profiles WHERE phone = $1`, phone)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserProfile(row rowScanner) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := row.Scan(
		&profile.Phone,
		&profile.Name,
		&profile.Sex,
		&profile.Age,
		&profile.WeightKG,
		&profile.HeightCM,
		&profile.Experience,
		&profile.Availability,
		&profile.Goal,
		&profile.RoutineType,
		&profile.Injuries,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
