package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/AtlasCoachBack/internal/ai"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const logDateLayout = "2006-01-02"

type structuredGenerator interface {
	GenerateStructured(ctx context.Context, req ai.StructuredRequest, out any) error
}

type planReader interface {
	GetByPhone(ctx context.Context, phone string) (*models.PlanSet, error)
}

type planStore interface {
	planReader
	// Save stores set only while the profile still has profileVersion as its
	// updated_at, and returns pgx.ErrNoRows otherwise.
	Save(ctx context.Context, phone string, set models.PlanSet, profileVersion time.Time) (*models.PlanSet, error)
	// UpdateWorkout returns pgx.ErrNoRows unless the stored set was generated
	// at generatedAt.
	UpdateWorkout(ctx context.Context, phone string, plan models.WorkoutPlan, generatedAt time.Time) error
}

type completionStore interface {
	ListForDay(ctx context.Context, phone string, day int) ([]models.CompletionMark, error)
	Toggle(ctx context.Context, phone string, day int, mark models.CompletionMark) (bool, error)
}

type PlanService struct {
	plans       planStore
	completions completionStore
	profiles    profileReader
	generator   structuredGenerator
	locale      string
	now         func() time.Time

	inflight singleflight.Group
}

func NewPlanService(
	plans planStore,
	completions completionStore,
	profiles profileReader,
	generator structuredGenerator,
	locale string,
) *PlanService {
	return &PlanService{
		plans:       plans,
		completions: completions,
		profiles:    profiles,
		generator:   generator,
		locale:      locale,
		now:         time.Now,
	}
}

// Get returns the stored plans, generating both when either one is missing.
func (s *PlanService) Get(ctx context.Context, phone string) (*models.PlanSet, error) {
	existing, err := s.plans.GetByPhone(ctx, phone)
	if err == nil && planComplete(existing) {
		return existing, nil
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return s.generate(ctx, phone)
}

// Regenerate replaces both plans with freshly generated ones.
func (s *PlanService) Regenerate(ctx context.Context, phone string) (*models.PlanSet, error) {
	return s.generate(ctx, phone)
}

// generate runs at most one generation per profile version. Callers that
// read the same version share its result. A profile edit made meanwhile
// starts a new generation, and the older one is refused when it saves.
func (s *PlanService) generate(ctx context.Context, phone string) (*models.PlanSet, error) {
	profile, err := s.profiles.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	key := phone + "@" + strconv.FormatInt(profile.UpdatedAt.UnixNano(), 10)
	result, err, _ := s.inflight.Do(key, func() (any, error) {
		// Shared by every waiting caller, so one disconnecting client must
		// not cancel it.
		genCtx := context.WithoutCancel(ctx)

		set, err := s.generatePlans(genCtx, *profile)
		if err != nil {
			return nil, err
		}
		saved, err := s.plans.Save(genCtx, phone, set, profile.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrPlanSuperseded
			}
			return nil, err
		}
		return saved, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.PlanSet), nil
}

func (s *PlanService) generatePlans(ctx context.Context, profile models.UserProfile) (models.PlanSet, error) {
	var (
		workout   models.WorkoutPlan
		nutrition models.NutritionPlan
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.generator.GenerateStructured(gctx, ai.StructuredRequest{
			Name:   "workout_plan",
			Prompt: ai.WorkoutPrompt(profile, s.locale),
			Schema: ai.WorkoutPlanSchema,
		}, &workout)
	})
	g.Go(func() error {
		return s.generator.GenerateStructured(gctx, ai.StructuredRequest{
			Name:   "nutrition_plan",
			Prompt: ai.NutritionPrompt(profile, s.locale),
			Schema: ai.NutritionPlanSchema,
		}, &nutrition)
	})
	if err := g.Wait(); err != nil {
		return models.PlanSet{}, fmt.Errorf("%w: %w", ErrPlanGeneration, err)
	}

	if len(workout.DailyWorkouts) == 0 || len(nutrition.DailyPlan) == 0 {
		return models.PlanSet{}, fmt.Errorf("%w: empty plan returned", ErrPlanGeneration)
	}
	for i := range workout.DailyWorkouts {
		if workout.DailyWorkouts[i].Day <= 0 {
			workout.DailyWorkouts[i].Day = i + 1
		}
	}

	return models.PlanSet{Workout: workout, Nutrition: nutrition}, nil
}

// Reorder moves the exercise at index from to index to within one day.
func (s *PlanService) Reorder(ctx context.Context, phone string, day, from, to int) (*models.DailyWorkout, error) {
	set, err := s.loadPlans(ctx, phone)
	if err != nil {
		return nil, err
	}
	workout, ok := set.Workout.Day(day)
	if !ok {
		return nil, ErrDayNotFound
	}
	count := len(workout.Exercises)
	if from < 0 || from >= count || to < 0 || to >= count {
		return nil, ErrInvalidInput
	}
	if from == to {
		return workout, nil
	}

	moved := workout.Exercises[from]
	exercises := slices.Delete(slices.Clone(workout.Exercises), from, from+1)
	workout.Exercises = slices.Insert(exercises, to, moved)

	if err := s.plans.UpdateWorkout(ctx, phone, set.Workout, set.GeneratedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanSuperseded
		}
		return nil, err
	}
	return workout, nil
}

// ToggleCompletion flips the checklist mark of one exercise and returns the
// day's progress afterwards.
func (s *PlanService) ToggleCompletion(ctx context.Context, phone string, day, index int) (*models.DayProgress, error) {
	set, err := s.loadPlans(ctx, phone)
	if err != nil {
		return nil, err
	}
	workout, exercise, err := findExercise(set, day, index)
	if err != nil {
		return nil, err
	}

	mark := models.CompletionMark{Name: exercise.Name, Occurrence: occurrence(workout.Exercises, index)}
	if _, err := s.completions.Toggle(ctx, phone, day, mark); err != nil {
		return nil, err
	}
	return s.progress(ctx, phone, workout)
}

func (s *PlanService) Progress(ctx context.Context, phone string, day int) (*models.DayProgress, error) {
	set, err := s.loadPlans(ctx, phone)
	if err != nil {
		return nil, err
	}
	workout, ok := set.Workout.Day(day)
	if !ok {
		return nil, ErrDayNotFound
	}
	return s.progress(ctx, phone, workout)
}

func (s *PlanService) progress(ctx context.Context, phone string, workout *models.DailyWorkout) (*models.DayProgress, error) {
	marked, err := s.completions.ListForDay(ctx, phone, workout.Day)
	if err != nil {
		return nil, err
	}

	done := make(map[models.CompletionMark]struct{}, len(marked))
	for _, mark := range marked {
		done[mark] = struct{}{}
	}

	progress := &models.DayProgress{
		Day:              workout.Day,
		Completed:        make([]string, 0, len(marked)),
		CompletedIndexes: make([]int, 0, len(marked)),
		Total:            len(workout.Exercises),
	}
	seen := make(map[string]int, len(workout.Exercises))
	for i, exercise := range workout.Exercises {
		mark := models.CompletionMark{Name: exercise.Name, Occurrence: seen[exercise.Name]}
		seen[exercise.Name]++
		if _, ok := done[mark]; ok {
			progress.Completed = append(progress.Completed, exercise.Name)
			progress.CompletedIndexes = append(progress.CompletedIndexes, i)
		}
	}
	if progress.Total > 0 {
		progress.Percentage = int(math.Round(float64(len(progress.Completed)) / float64(progress.Total) * 100))
	}
	return progress, nil
}

// LogTemplate drafts a workout log for the day with one empty set per planned
// set, ready to be filled in by hand or by voice.
func (s *PlanService) LogTemplate(ctx context.Context, phone string, day int) (*models.WorkoutLog, error) {
	set, err := s.loadPlans(ctx, phone)
	if err != nil {
		return nil, err
	}
	workout, ok := set.Workout.Day(day)
	if !ok {
		return nil, ErrDayNotFound
	}

	draft := &models.WorkoutLog{
		Date:         s.now().UTC().Format(logDateLayout),
		WorkoutFocus: workout.Focus,
		Exercises:    make([]models.ExerciseLog, 0, len(workout.Exercises)),
	}
	for _, exercise := range workout.Exercises {
		sets := exercise.Sets
		if sets < 1 {
			sets = 1
		}
		draft.Exercises = append(draft.Exercises, models.ExerciseLog{
			ExerciseName: exercise.Name,
			Sets:         make([]models.SetLog, sets),
		})
	}
	return draft, nil
}

func (s *PlanService) loadPlans(ctx context.Context, phone string) (*models.PlanSet, error) {
	return loadPlans(ctx, s.plans, phone)
}

func loadPlans(ctx context.Context, plans planReader, phone string) (*models.PlanSet, error) {
	set, err := plans.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return set, nil
}

func findExercise(set *models.PlanSet, day, index int) (*models.DailyWorkout, models.Exercise, error) {
	workout, ok := set.Workout.Day(day)
	if !ok {
		return nil, models.Exercise{}, ErrDayNotFound
	}
	if index < 0 || index >= len(workout.Exercises) {
		return nil, models.Exercise{}, ErrExerciseNotFound
	}
	return workout, workout.Exercises[index], nil
}

// occurrence counts the entries before index that share its exercise name.
func occurrence(exercises []models.Exercise, index int) int {
	n := 0
	for _, exercise := range exercises[:index] {
		if exercise.Name == exercises[index].Name {
			n++
		}
	}
	return n
}

func planComplete(set *models.PlanSet) bool {
	return set != nil && len(set.Workout.DailyWorkouts) > 0 && len(set.Nutrition.DailyPlan) > 0
}
