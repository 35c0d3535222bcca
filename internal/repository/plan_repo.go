package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

type PlanRepository struct {
	db DBTX
}

func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) GetByPhone(ctx context.Context, phone string) (*models.PlanSet, error) {
	query := `
		SELECT workout_plan, nutrition_plan, generated_at
		FROM plan_sets
		WHERE user_phone = $1
	`
	var workoutRaw, nutritionRaw []byte
	var set models.PlanSet
	if err := r.db.QueryRow(ctx, query, phone).Scan(&workoutRaw, &nutritionRaw, &set.GeneratedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(workoutRaw, &set.Workout); err != nil {
		return nil, fmt.Errorf("decode workout plan: %w", err)
	}
	if err := json.Unmarshal(nutritionRaw, &set.Nutrition); err != nil {
		return nil, fmt.Errorf("decode nutrition plan: %w", err)
	}
	return &set, nil
}

// Save replaces the stored plan set for phone with both plans at once. The
// write only happens while the profile's updated_at equals profileVersion;
// otherwise it returns pgx.ErrNoRows. The profile row is share-locked so a
// concurrent profile edit either sees this set and deletes it or makes it
// fail here.
func (r *PlanRepository) Save(
	ctx context.Context,
	phone string,
	set models.PlanSet,
	profileVersion time.Time,
) (*models.PlanSet, error) {
	workoutRaw, err := json.Marshal(set.Workout)
	if err != nil {
		return nil, fmt.Errorf("encode workout plan: %w", err)
	}
	nutritionRaw, err := json.Marshal(set.Nutrition)
	if err != nil {
		return nil, fmt.Errorf("encode nutrition plan: %w", err)
	}

	query := `
		INSERT INTO plan_sets (user_phone, workout_plan, nutrition_plan, generated_at)
		SELECT $1, $2, $3, NOW()
		WHERE EXISTS (
			SELECT 1 FROM user_profiles
			WHERE phone = $1 AND updated_at = $4
			FOR SHARE
		)
		ON CONFLICT (user_phone) DO UPDATE
		SET workout_plan = EXCLUDED.workout_plan,
			nutrition_plan = EXCLUDED.nutrition_plan,
			generated_at = EXCLUDED.generated_at
		RETURNING generated_at
	`
	saved := set
	if err := r.db.QueryRow(ctx, query, phone, workoutRaw, nutritionRaw, profileVersion).Scan(&saved.GeneratedAt); err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdateWorkout rewrites the workout half of the set generated at generatedAt.
// A regenerated or deleted set yields pgx.ErrNoRows.
func (r *PlanRepository) UpdateWorkout(
	ctx context.Context,
	phone string,
	plan models.WorkoutPlan,
	generatedAt time.Time,
) error {
	workoutRaw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode workout plan: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE plan_sets SET workout_plan = $1 WHERE user_phone = $2 AND generated_at = $3`,
		workoutRaw, phone, generatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, phone string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM plan_sets WHERE user_phone = $1`, phone)
	return err
}
