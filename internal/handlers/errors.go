package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AtlasCoachBack/internal/services"
)

type errorResponse struct {
	target  error
	status  int
	message string
}

var serviceErrors = []errorResponse{
	{services.ErrInvalidInput, fiber.StatusBadRequest, "Invalid request"},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "Invalid credentials"},
	{services.ErrSubscriptionInactive, fiber.StatusPaymentRequired, "Subscription inactive"},
	{services.ErrForbidden, fiber.StatusForbidden, "Forbidden"},
	{services.ErrAdminDisabled, fiber.StatusForbidden, "Admin login disabled"},
	{services.ErrProfileNotFound, fiber.StatusNotFound, "Profile not found"},
	{services.ErrUserNotFound, fiber.StatusNotFound, "User not found"},
	{services.ErrPlanNotFound, fiber.StatusNotFound, "Plan not found"},
	{services.ErrDayNotFound, fiber.StatusNotFound, "Workout day not found"},
	{services.ErrExerciseNotFound, fiber.StatusNotFound, "Exercise not found"},
	{services.ErrConflict, fiber.StatusConflict, "Profile already exists"},
	{services.ErrPlanSuperseded, fiber.StatusConflict, "Plans changed, reload and try again"},
	{services.ErrPlanGeneration, fiber.StatusBadGateway, "Could not generate plan"},
	{services.ErrCoachUnavailable, fiber.StatusBadGateway, "Could not reach the coach, please try again"},
	{services.ErrIllustration, fiber.StatusBadGateway, "Could not generate illustration"},
	{services.ErrStorageUnavailable, fiber.StatusServiceUnavailable, "Illustration storage is not configured"},
}

// mapServiceError turns service sentinels into JSON errors. Anything else is
// logged and answered with a 500 carrying fallback.
func mapServiceError(c *fiber.Ctx, err error, fallback string) error {
	for _, candidate := range serviceErrors {
		if errors.Is(err, candidate.target) {
			if candidate.status >= fiber.StatusInternalServerError {
				log.Printf("%s %s: %v", c.Method(), c.Path(), err)
			}
			return c.Status(candidate.status).JSON(fiber.Map{"error": candidate.message})
		}
	}

	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
}
