package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"github.com/saeid-a/AtlasCoachBack/internal/services"
)

type workoutLogService interface {
	Save(ctx context.Context, phone string, log models.WorkoutLog) (*models.WorkoutLog, error)
	History(ctx context.Context, phone string, page, limit int) ([]models.WorkoutLog, int, error)
	ApplyVoice(exercise models.ExerciseLog, transcript string) (*services.VoiceUpdate, error)
}

type WorkoutHandler struct {
	service workoutLogService
}

func NewWorkoutHandler(service workoutLogService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

type voiceRequest struct {
	Transcript string             `json:"transcript"`
	Exercise   models.ExerciseLog `json:"exercise"`
}

func (h *WorkoutHandler) CreateLog(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req models.WorkoutLog
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	saved, err := h.service.Save(c.Context(), phone, req)
	if err != nil {
		return mapServiceError(c, err, "Failed to save workout log")
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *WorkoutHandler) ListLogs(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	page, limit := parsePagination(c)
	logs, total, err := h.service.History(c.Context(), phone, page, limit)
	if err != nil {
		return mapServiceError(c, err, "Failed to load workout history")
	}

	return c.JSON(fiber.Map{
		"logs":       logs,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

// ApplyVoice fills one exercise of an unsaved log from a speech transcript.
// Nothing is stored.
func (h *WorkoutHandler) ApplyVoice(c *fiber.Ctx) error {
	if _, ok := currentPhone(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req voiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	update, err := h.service.ApplyVoice(req.Exercise, req.Transcript)
	if err != nil {
		return mapServiceError(c, err, "Failed to apply voice command")
	}
	return c.JSON(update)
}
