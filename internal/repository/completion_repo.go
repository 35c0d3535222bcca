package repository

import (
	"context"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

type CompletionRepository struct {
	db DBTX
}

func NewCompletionRepository(db DBTX) *CompletionRepository {
	return &CompletionRepository{db: db}
}

func (r *CompletionRepository) ListForDay(ctx context.Context, phone string, day int) ([]models.CompletionMark, error) {
	query := `
		SELECT exercise_name, occurrence
		FROM completed_exercises
		WHERE user_phone = $1 AND day = $2
		ORDER BY created_at, exercise_name, occurrence
	`
	rows, err := r.db.Query(ctx, query, phone, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marks := make([]models.CompletionMark, 0)
	for rows.Next() {
		var mark models.CompletionMark
		if err := rows.Scan(&mark.Name, &mark.Occurrence); err != nil {
			return nil, err
		}
		marks = append(marks, mark)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return marks, nil
}

// Toggle flips the completed mark and reports whether it is now set.
func (r *CompletionRepository) Toggle(ctx context.Context, phone string, day int, mark models.CompletionMark) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM completed_exercises
		WHERE user_phone = $1 AND day = $2 AND exercise_name = $3 AND occurrence = $4
	`, phone, day, mark.Name, mark.Occurrence)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO completed_exercises (user_phone, day, exercise_name, occurrence)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
	`, phone, day, mark.Name, mark.Occurrence)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *CompletionRepository) DeleteAll(ctx context.Context, phone string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM completed_exercises WHERE user_phone = $1`, phone)
	return err
}
