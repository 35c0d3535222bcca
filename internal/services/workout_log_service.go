package services

import (
	"context"
	"strings"
	"time"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"github.com/saeid-a/AtlasCoachBack/internal/voice"
)

type workoutLogStore interface {
	Create(ctx context.Context, phone string, log models.WorkoutLog) (*models.WorkoutLog, error)
	ListByPhone(ctx context.Context, phone string, limit int, offset int) ([]models.WorkoutLog, int, error)
}

type WorkoutLogService struct {
	logs workoutLogStore
	now  func() time.Time
}

func NewWorkoutLogService(logs workoutLogStore) *WorkoutLogService {
	return &WorkoutLogService{
		logs: logs,
		now:  time.Now,
	}
}

// Save appends a log. Sets with neither reps nor weight are dropped, then
// exercises left without sets. The date defaults to today.
func (s *WorkoutLogService) Save(ctx context.Context, phone string, log models.WorkoutLog) (*models.WorkoutLog, error) {
	log.Date = strings.TrimSpace(log.Date)
	if log.Date == "" {
		log.Date = s.now().UTC().Format(logDateLayout)
	}
	if _, err := time.Parse(logDateLayout, log.Date); err != nil {
		return nil, ErrInvalidInput
	}
	log.WorkoutFocus = strings.TrimSpace(log.WorkoutFocus)

	exercises := make([]models.ExerciseLog, 0, len(log.Exercises))
	for _, exercise := range log.Exercises {
		if exercise.ExerciseName = strings.TrimSpace(exercise.ExerciseName); exercise.ExerciseName == "" {
			return nil, ErrInvalidInput
		}

		sets := make([]models.SetLog, 0, len(exercise.Sets))
		for _, set := range exercise.Sets {
			if set.Reps < 0 || set.Weight < 0 {
				return nil, ErrInvalidInput
			}
			if set.Reps == 0 && set.Weight == 0 {
				continue
			}
			sets = append(sets, set)
		}
		if len(sets) == 0 {
			continue
		}
		exercise.Sets = sets
		exercises = append(exercises, exercise)
	}
	log.Exercises = exercises

	return s.logs.Create(ctx, phone, log)
}

func (s *WorkoutLogService) History(ctx context.Context, phone string, page, limit int) ([]models.WorkoutLog, int, error) {
	if page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.logs.ListByPhone(ctx, phone, limit, (page-1)*limit)
}

type VoiceUpdate struct {
	Exercise models.ExerciseLog `json:"exercise"`
	SetIndex int                `json:"set_index"`
	Changed  bool               `json:"changed"`
}

// ApplyVoice applies a spoken command such as "serie 2, 10 reps con 40 kilos"
// to one exercise of a log being filled in.
func (s *WorkoutLogService) ApplyVoice(exercise models.ExerciseLog, transcript string) (*VoiceUpdate, error) {
	if strings.TrimSpace(transcript) == "" || len(exercise.Sets) == 0 {
		return nil, ErrInvalidInput
	}

	updated, index := voice.Apply(exercise, voice.Parse(transcript))
	return &VoiceUpdate{
		Exercise: updated,
		SetIndex: index,
		Changed:  index >= 0,
	}, nil
}
