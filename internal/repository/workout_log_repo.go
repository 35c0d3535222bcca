package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

type WorkoutLogRepository struct {
	db DBTX
}

func NewWorkoutLogRepository(db DBTX) *WorkoutLogRepository {
	return &WorkoutLogRepository{db: db}
}

func (r *WorkoutLogRepository) Create(ctx context.Context, phone string, log models.WorkoutLog) (*models.WorkoutLog, error) {
	exercisesRaw, err := json.Marshal(log.Exercises)
	if err != nil {
		return nil, fmt.Errorf("encode exercises: %w", err)
	}

	query := `
		INSERT INTO workout_logs (user_phone, log_date, workout_focus, exercises)
		VALUES ($1, $2::text::date, $3, $4)
		RETURNING id, to_char(log_date, 'YYYY-MM-DD'), workout_focus, exercises, created_at
	`
	return scanWorkoutLog(r.db.QueryRow(ctx, query, phone, log.Date, log.WorkoutFocus, exercisesRaw))
}

func (r *WorkoutLogRepository) ListByPhone(
	ctx context.Context,
	phone string,
	limit int,
	offset int,
) ([]models.WorkoutLog, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout_logs WHERE user_phone = $1`, phone).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, to_char(log_date, 'YYYY-MM-DD'), workout_focus, exercises, created_at
		FROM workout_logs
		WHERE user_phone = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, phone, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	logs := make([]models.WorkoutLog, 0)
	for rows.Next() {
		log, err := scanWorkoutLog(rows)
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, *log)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *WorkoutLogRepository) DeleteAll(ctx context.Context, phone string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM workout_logs WHERE user_phone = $1`, phone)
	return err
}

func scanWorkoutLog(row rowScanner) (*models.WorkoutLog, error) {
	var log models.WorkoutLog
	var exercisesRaw []byte
	if err := row.Scan(&log.ID, &log.Date, &log.WorkoutFocus, &exercisesRaw, &log.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(exercisesRaw, &log.Exercises); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	return &log, nil
}
