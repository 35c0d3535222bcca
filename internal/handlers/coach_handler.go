package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

type coachService interface {
	Send(ctx context.Context, phone, content string) (*models.CoachReply, error)
	History(ctx context.Context, phone string, page, limit int) ([]models.CoachMessage, int, error)
	Reset(ctx context.Context, phone string) error
}

type CoachHandler struct {
	service coachService
}

func NewCoachHandler(service coachService) *CoachHandler {
	return &CoachHandler{service: service}
}

type coachMessageRequest struct {
	Content string `json:"content"`
}

func (h *CoachHandler) SendMessage(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req coachMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	reply, err := h.service.Send(c.Context(), phone, req.Content)
	if err != nil {
		return mapServiceError(c, err, "Failed to send message")
	}
	return c.JSON(reply)
}

func (h *CoachHandler) GetMessages(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	page, limit := parsePagination(c)
	messages, total, err := h.service.History(c.Context(), phone, page, limit)
	if err != nil {
		return mapServiceError(c, err, "Failed to load conversation")
	}

	return c.JSON(fiber.Map{
		"messages":   messages,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *CoachHandler) ResetConversation(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := h.service.Reset(c.Context(), phone); err != nil {
		return mapServiceError(c, err, "Failed to reset conversation")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
