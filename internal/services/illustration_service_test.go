package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

type stubIllustrationCache struct {
	cached  *models.ExerciseIllustration
	saveErr error
	saved   *models.ExerciseIllustration
	lastKey string
}

func (c *stubIllustrationCache) GetByKey(_ context.Context, key string) (*models.ExerciseIllustration, error) {
	c.lastKey = key
	if c.cached == nil {
		return nil, pgx.ErrNoRows
	}
	return c.cached, nil
}

func (c *stubIllustrationCache) Save(_ context.Context, illustration models.ExerciseIllustration) (*models.ExerciseIllustration, error) {
	if c.saveErr != nil {
		return nil, c.saveErr
	}
	c.saved = &illustration
	return &illustration, nil
}

type stubImages struct {
	image []byte
	err   error
	calls int
}

func (g *stubImages) GenerateImage(_ context.Context, _ string) ([]byte, error) {
	g.calls++
	return g.image, g.err
}

type stubStorage struct {
	uploadURL    string
	uploadErr    error
	uploaded     []byte
	lastFilename string
	lastFolder   string
	deletedURL   string
}

func (s *stubStorage) UploadFile(_ context.Context, content io.Reader, filename string, folder string) (string, error) {
	s.uploaded, _ = io.ReadAll(content)
	s.lastFilename = filename
	s.lastFolder = folder
	return s.uploadURL, s.uploadErr
}

func (s *stubStorage) DeleteFile(_ context.Context, fileURL string) error {
	s.deletedURL = fileURL
	return nil
}

func TestIllustrationCacheHit(t *testing.T) {
	workout, nutrition := samplePlans()
	plans := &stubPlanRepo{set: &models.PlanSet{Workout: workout, Nutrition: nutrition}}
	cache := &stubIllustrationCache{cached: &models.ExerciseIllustration{ImageURL: "https://cdn/x.png"}}
	images := &stubImages{}
	service := NewIllustrationService(plans, cache, images, nil)

	illustration, err := service.ForExercise(context.Background(), "+5491122334455", 1, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if illustration.ImageURL != "https://cdn/x.png" || images.calls != 0 {
		t.Errorf("expected cached illustration")
	}
	if cache.lastKey != "press banca" {
		t.Errorf("unexpected cache key %q", cache.lastKey)
	}
}

func TestIllustrationWithoutStorage(t *testing.T) {
	service := NewIllustrationService(&stubPlanRepo{}, &stubIllustrationCache{}, &stubImages{}, nil)

	if _, err := service.ForName(context.Background(), "Sentadilla"); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestIllustrationGeneratesAndCaches(t *testing.T) {
	cache := &stubIllustrationCache{}
	storage := &stubStorage{uploadURL: "https://project.supabase.co/storage/v1/object/public/media/illustrations/a.png"}
	service := NewIllustrationService(&stubPlanRepo{}, cache, &stubImages{image: []byte("png")}, storage)

	illustration, err := service.ForName(context.Background(), "  Peso   Muerto ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if illustration.ImageURL != storage.uploadURL || cache.saved.NameKey != "peso muerto" {
		t.Errorf("unexpected illustration %+v", cache.saved)
	}
	if storage.lastFolder != illustrationFolder || !strings.HasSuffix(storage.lastFilename, ".png") || string(storage.uploaded) != "png" {
		t.Errorf("unexpected upload %s/%s", storage.lastFolder, storage.lastFilename)
	}
}

func TestIllustrationGenerationFailure(t *testing.T) {
	storage := &stubStorage{}
	service := NewIllustrationService(&stubPlanRepo{}, &stubIllustrationCache{}, &stubImages{err: errors.New("blocked")}, storage)

	if _, err := service.ForName(context.Background(), "Sentadilla"); !errors.Is(err, ErrIllustration) {
		t.Fatalf("expected ErrIllustration, got %v", err)
	}
	if storage.lastFilename != "" {
		t.Errorf("expected no upload")
	}
}

func TestIllustrationCacheFailureRemovesUpload(t *testing.T) {
	storage := &stubStorage{uploadURL: "https://cdn/a.png"}
	cache := &stubIllustrationCache{saveErr: errors.New("db down")}
	service := NewIllustrationService(&stubPlanRepo{}, cache, &stubImages{image: []byte("png")}, storage)

	if _, err := service.ForName(context.Background(), "Sentadilla"); err == nil {
		t.Fatalf("expected error")
	}
	if storage.deletedURL != "https://cdn/a.png" {
		t.Errorf("expected orphaned upload removed")
	}
}
