package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"github.com/saeid-a/AtlasCoachBack/internal/services"
	"github.com/saeid-a/AtlasCoachBack/pkg/utils"
)

type accountService interface {
	Onboard(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error)
	Get(ctx context.Context, phone string) (*models.UserProfile, error)
}

type adminAuthenticator interface {
	AuthenticateAdmin(ctx context.Context, phone, password string) (string, error)
}

type settingsGetter interface {
	Get(ctx context.Context) (*models.AppSettings, error)
}

type AuthHandler struct {
	accounts  accountService
	admins    adminAuthenticator
	settings  settingsGetter
	jwtSecret string
}

func NewAuthHandler(
	accounts accountService,
	admins adminAuthenticator,
	settings settingsGetter,
	jwtSecret string,
) *AuthHandler {
	return &AuthHandler{
		accounts:  accounts,
		admins:    admins,
		settings:  settings,
		jwtSecret: jwtSecret,
	}
}

type loginRequest struct {
	Phone string `json:"phone"`
}

type adminLoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Onboarding creates the profile from the questionnaire and signs the user in.
func (h *AuthHandler) Onboarding(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.accounts.Onboard(c.Context(), req.toModel())
	if err != nil {
		return mapServiceError(c, err, "Failed to create profile")
	}

	token, err := utils.GenerateToken(profile.Phone, models.RoleUser, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"profile": profile,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	phone := utils.NormalizePhone(req.Phone)
	if phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "phone must be a valid phone number"})
	}

	profile, err := h.accounts.Get(c.Context(), phone)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":               "Profile not found",
				"onboarding_required": true,
			})
		}
		return mapServiceError(c, err, "Failed to load profile")
	}

	token, err := utils.GenerateToken(profile.Phone, models.RoleUser, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"profile": profile,
	})
}

func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	phone, err := h.admins.AuthenticateAdmin(c.Context(), req.Phone, req.Password)
	if err != nil {
		return mapServiceError(c, err, "Failed to sign in")
	}

	token, err := utils.GenerateToken(phone, models.RoleAdmin, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"role":  models.RoleAdmin,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	role, _ := c.Locals("role").(string)

	if role == models.RoleAdmin {
		settings, err := h.settings.Get(c.Context())
		if err != nil {
			return mapServiceError(c, err, "Failed to load settings")
		}
		return c.JSON(fiber.Map{
			"phone":    phone,
			"role":     role,
			"settings": settings,
		})
	}

	profile, err := h.accounts.Get(c.Context(), phone)
	if err != nil {
		return mapServiceError(c, err, "Failed to load profile")
	}
	return c.JSON(fiber.Map{
		"phone":   phone,
		"role":    role,
		"profile": profile,
	})
}
