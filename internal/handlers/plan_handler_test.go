package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"github.com/saeid-a/AtlasCoachBack/internal/services"
)

type stubPlanService struct {
	set       *models.PlanSet
	err       error
	lastDay   int
	lastFrom  int
	lastTo    int
	lastIndex int
}

func (s *stubPlanService) Get(_ context.Context, _ string) (*models.PlanSet, error) {
	return s.set, s.err
}

func (s *stubPlanService) Regenerate(_ context.Context, _ string) (*models.PlanSet, error) {
	return s.set, s.err
}

func (s *stubPlanService) Reorder(_ context.Context, _ string, day, from, to int) (*models.DailyWorkout, error) {
	s.lastDay, s.lastFrom, s.lastTo = day, from, to
	return &models.DailyWorkout{Day: day}, s.err
}

func (s *stubPlanService) ToggleCompletion(_ context.Context, _ string, day, index int) (*models.DayProgress, error) {
	s.lastDay, s.lastIndex = day, index
	return &models.DayProgress{Day: day}, s.err
}

func (s *stubPlanService) Progress(_ context.Context, _ string, day int) (*models.DayProgress, error) {
	s.lastDay = day
	return &models.DayProgress{Day: day}, s.err
}

func (s *stubPlanService) LogTemplate(_ context.Context, _ string, day int) (*models.WorkoutLog, error) {
	s.lastDay = day
	return &models.WorkoutLog{}, s.err
}

type stubIllustrationService struct {
	err error
}

func (s *stubIllustrationService) ForExercise(_ context.Context, _ string, _ int, _ int) (*models.ExerciseIllustration, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.ExerciseIllustration{ImageURL: "https://cdn/x.png"}, nil
}

func newPlanTestApp(plans *stubPlanService, illustrations *stubIllustrationService) *fiber.App {
	handler := NewPlanHandler(plans, illustrations)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "+5491122334455")
		c.Locals("role", "user")
		return c.Next()
	})
	app.Get("/plans", handler.GetPlans)
	app.Put("/plans/workout/days/:day/order", handler.ReorderDay)
	app.Post("/plans/workout/days/:day/exercises/:index/complete", handler.ToggleExercise)
	app.Post("/plans/workout/days/:day/exercises/:index/illustration", handler.Illustration)
	return app
}

func TestGetPlansGenerationFailure(t *testing.T) {
	app := newPlanTestApp(&stubPlanService{err: fmt.Errorf("%w: timeout", services.ErrPlanGeneration)}, &stubIllustrationService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/plans", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestReorderDayParsesBody(t *testing.T) {
	plans := &stubPlanService{}
	app := newPlanTestApp(plans, &stubIllustrationService{})

	req := httptest.NewRequest(http.MethodPut, "/plans/workout/days/2/order", bytes.NewBufferString(`{"from":0,"to":3}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if plans.lastDay != 2 || plans.lastFrom != 0 || plans.lastTo != 3 {
		t.Errorf("unexpected reorder args %d %d %d", plans.lastDay, plans.lastFrom, plans.lastTo)
	}
}

func TestReorderDayPlansChangedMeanwhile(t *testing.T) {
	app := newPlanTestApp(&stubPlanService{err: services.ErrPlanSuperseded}, &stubIllustrationService{})

	req := httptest.NewRequest(http.MethodPut, "/plans/workout/days/1/order", bytes.NewBufferString(`{"from":0,"to":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestReorderDayRequiresIndexes(t *testing.T) {
	app := newPlanTestApp(&stubPlanService{}, &stubIllustrationService{})

	req := httptest.NewRequest(http.MethodPut, "/plans/workout/days/2/order", bytes.NewBufferString(`{"from":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestToggleExerciseInvalidDay(t *testing.T) {
	app := newPlanTestApp(&stubPlanService{}, &stubIllustrationService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/plans/workout/days/zero/exercises/1/complete", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestToggleExerciseNotFound(t *testing.T) {
	plans := &stubPlanService{err: services.ErrExerciseNotFound}
	app := newPlanTestApp(plans, &stubIllustrationService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/plans/workout/days/1/exercises/7/complete", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if plans.lastIndex != 7 {
		t.Errorf("expected index 7, got %d", plans.lastIndex)
	}
}

func TestIllustrationStorageUnavailable(t *testing.T) {
	app := newPlanTestApp(&stubPlanService{}, &stubIllustrationService{err: services.ErrStorageUnavailable})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/plans/workout/days/1/exercises/0/illustration", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}
