package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/AtlasCoachBack/internal/ai"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"golang.org/x/sync/singleflight"
)

const illustrationFolder = "illustrations"

type imageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

type illustrationStore interface {
	GetByKey(ctx context.Context, nameKey string) (*models.ExerciseIllustration, error)
	Save(ctx context.Context, illustration models.ExerciseIllustration) (*models.ExerciseIllustration, error)
}

// IllustrationService draws exercises on demand. Images are shared between
// users through a cache keyed by the exercise name.
type IllustrationService struct {
	plans    planReader
	cache    illustrationStore
	images   imageGenerator
	storage  StorageService
	inflight singleflight.Group
}

// NewIllustrationService accepts a nil storage when no bucket is configured;
// cached illustrations are still served.
func NewIllustrationService(
	plans planReader,
	cache illustrationStore,
	images imageGenerator,
	storage StorageService,
) *IllustrationService {
	return &IllustrationService{
		plans:   plans,
		cache:   cache,
		images:  images,
		storage: storage,
	}
}

func (s *IllustrationService) ForExercise(ctx context.Context, phone string, day, index int) (*models.ExerciseIllustration, error) {
	set, err := loadPlans(ctx, s.plans, phone)
	if err != nil {
		return nil, err
	}
	_, exercise, err := findExercise(set, day, index)
	if err != nil {
		return nil, err
	}
	return s.ForName(ctx, exercise.Name)
}

func (s *IllustrationService) ForName(ctx context.Context, exerciseName string) (*models.ExerciseIllustration, error) {
	key := illustrationKey(exerciseName)
	if key == "" {
		return nil, ErrInvalidInput
	}

	cached, err := s.cache.GetByKey(ctx, key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	result, err, _ := s.inflight.Do(key, func() (any, error) {
		return s.create(context.WithoutCancel(ctx), key, strings.TrimSpace(exerciseName))
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.ExerciseIllustration), nil
}

func (s *IllustrationService) create(ctx context.Context, key, exerciseName string) (*models.ExerciseIllustration, error) {
	image, err := s.images.GenerateImage(ctx, ai.IllustrationPrompt(exerciseName))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIllustration, err)
	}

	imageURL, err := s.storage.UploadFile(ctx, bytes.NewReader(image), uuid.NewString()+".png", illustrationFolder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIllustration, err)
	}

	saved, err := s.cache.Save(ctx, models.ExerciseIllustration{
		NameKey:      key,
		ExerciseName: exerciseName,
		ImageURL:     imageURL,
	})
	if err != nil {
		if deleteErr := s.storage.DeleteFile(ctx, imageURL); deleteErr != nil {
			log.Printf("delete orphaned illustration %s: %v", imageURL, deleteErr)
			return nil, errors.Join(err, deleteErr)
		}
		return nil, err
	}
	return saved, nil
}

func illustrationKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
