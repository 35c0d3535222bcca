package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

type profileService interface {
	Get(ctx context.Context, phone string) (*models.UserProfile, error)
	Update(ctx context.Context, phone string, profile models.UserProfile) (*models.UserProfile, error)
	Logout(ctx context.Context, phone string) error
}

type ProfileHandler struct {
	service profileService
}

func NewProfileHandler(service profileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.service.Get(c.Context(), phone)
	if err != nil {
		return mapServiceError(c, err, "Failed to load profile")
	}
	return c.JSON(fiber.Map{"profile": profile})
}

// UpdateProfile replaces the profile. Existing plans are discarded and will be
// generated again from the new answers.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateProfileRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.service.Update(c.Context(), phone, req.toModel())
	if err != nil {
		return mapServiceError(c, err, "Failed to update profile")
	}
	return c.JSON(fiber.Map{
		"profile":       profile,
		"plans_cleared": true,
	})
}

func (h *ProfileHandler) Logout(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := h.service.Logout(c.Context(), phone); err != nil {
		return mapServiceError(c, err, "Failed to log out")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
