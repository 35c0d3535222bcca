package repository

import (
	"context"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

type IllustrationRepository struct {
	db DBTX
}

func NewIllustrationRepository(db DBTX) *IllustrationRepository {
	return &IllustrationRepository{db: db}
}

func (r *IllustrationRepository) GetByKey(ctx context.Context, nameKey string) (*models.ExerciseIllustration, error) {
	query := `
		SELECT name_key, exercise_name, image_url, created_at
		FROM exercise_illustrations
		WHERE name_key = $1
	`
	var illustration models.ExerciseIllustration
	err := r.db.QueryRow(ctx, query, nameKey).Scan(
		&illustration.NameKey,
		&illustration.ExerciseName,
		&illustration.ImageURL,
		&illustration.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &illustration, nil
}

func (r *IllustrationRepository) Save(ctx context.Context, illustration models.ExerciseIllustration) (*models.ExerciseIllustration, error) {
	query := `
		INSERT INTO exercise_illustrations (name_key, exercise_name, image_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (name_key) DO UPDATE
		SET exercise_name = EXCLUDED.exercise_name,
			image_url = EXCLUDED.image_url,
			created_at = NOW()
		RETURNING name_key, exercise_name, image_url, created_at
	`
	var saved models.ExerciseIllustration
	err := r.db.QueryRow(ctx, query, illustration.NameKey, illustration.ExerciseName, illustration.ImageURL).Scan(
		&saved.NameKey,
		&saved.ExerciseName,
		&saved.ImageURL,
		&saved.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
