package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

type planService interface {
	Get(ctx context.Context, phone string) (*models.PlanSet, error)
	Regenerate(ctx context.Context, phone string) (*models.PlanSet, error)
	Reorder(ctx context.Context, phone string, day, from, to int) (*models.DailyWorkout, error)
	ToggleCompletion(ctx context.Context, phone string, day, index int) (*models.DayProgress, error)
	Progress(ctx context.Context, phone string, day int) (*models.DayProgress, error)
	LogTemplate(ctx context.Context, phone string, day int) (*models.WorkoutLog, error)
}

type illustrationService interface {
	ForExercise(ctx context.Context, phone string, day, index int) (*models.ExerciseIllustration, error)
}

type PlanHandler struct {
	plans         planService
	illustrations illustrationService
}

func NewPlanHandler(plans planService, illustrations illustrationService) *PlanHandler {
	return &PlanHandler{
		plans:         plans,
		illustrations: illustrations,
	}
}

type reorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// GetPlans returns the plans, generating them first when needed. Generation
// can take a while.
func (h *PlanHandler) GetPlans(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	set, err := h.plans.Get(c.Context(), phone)
	if err != nil {
		return mapServiceError(c, err, "Failed to load plans")
	}
	return c.JSON(set)
}

func (h *PlanHandler) Regenerate(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	set, err := h.plans.Regenerate(c.Context(), phone)
	if err != nil {
		return mapServiceError(c, err, "Failed to regenerate plans")
	}
	return c.JSON(set)
}

func (h *PlanHandler) ReorderDay(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	day, err := parseDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day"})
	}

	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.From == nil || req.To == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from and to are required"})
	}

	workout, err := h.plans.Reorder(c.Context(), phone, day, *req.From, *req.To)
	if err != nil {
		return mapServiceError(c, err, "Failed to reorder exercises")
	}
	return c.JSON(workout)
}

func (h *PlanHandler) ToggleExercise(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	day, index, err := parseDayAndIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day or exercise index"})
	}

	progress, err := h.plans.ToggleCompletion(c.Context(), phone, day, index)
	if err != nil {
		return mapServiceError(c, err, "Failed to update exercise")
	}
	return c.JSON(progress)
}

func (h *PlanHandler) DayProgress(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	day, err := parseDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day"})
	}

	progress, err := h.plans.Progress(c.Context(), phone, day)
	if err != nil {
		return mapServiceError(c, err, "Failed to load progress")
	}
	return c.JSON(progress)
}

func (h *PlanHandler) LogTemplate(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	day, err := parseDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day"})
	}

	draft, err := h.plans.LogTemplate(c.Context(), phone, day)
	if err != nil {
		return mapServiceError(c, err, "Failed to build workout log")
	}
	return c.JSON(draft)
}

func (h *PlanHandler) Illustration(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	day, index, err := parseDayAndIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day or exercise index"})
	}

	illustration, err := h.illustrations.ForExercise(c.Context(), phone, day, index)
	if err != nil {
		return mapServiceError(c, err, "Failed to load illustration")
	}
	return c.JSON(illustration)
}

func parseDay(c *fiber.Ctx) (int, error) {
	day, err := strconv.Atoi(c.Params("day"))
	if err != nil || day <= 0 {
		return 0, strconv.ErrSyntax
	}
	return day, nil
}

func parseDayAndIndex(c *fiber.Ctx) (int, int, error) {
	day, err := parseDay(c)
	if err != nil {
		return 0, 0, err
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return 0, 0, strconv.ErrSyntax
	}
	return day, index, nil
}
