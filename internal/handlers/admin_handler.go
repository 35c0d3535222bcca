package handlers

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"github.com/saeid-a/AtlasCoachBack/internal/services"
	"github.com/shopspring/decimal"
)

type registryService interface {
	List(ctx context.Context, filter string) ([]models.RegisteredUser, error)
	Toggle(ctx context.Context, phone string) (*models.RegisteredUser, error)
}

type settingsService interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Update(ctx context.Context, input services.UpdateSettingsInput) (*models.AppSettings, error)
}

type AdminHandler struct {
	registry registryService
	settings settingsService
}

func NewAdminHandler(registry registryService, settings settingsService) *AdminHandler {
	return &AdminHandler{
		registry: registry,
		settings: settings,
	}
}

type updateSettingsRequest struct {
	SubscriptionPrice *decimal.Decimal `json:"subscription_price"`
	PaymentLink       string           `json:"payment_link"`
	AdminPhone        string           `json:"admin_phone"`
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.registry.List(c.Context(), c.Query("q"))
	if err != nil {
		return mapServiceError(c, err, "Failed to load users")
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *AdminHandler) ToggleUser(c *fiber.Ctx) error {
	phone, err := url.PathUnescape(c.Params("phone"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid phone"})
	}

	user, err := h.registry.Toggle(c.Context(), phone)
	if err != nil {
		return mapServiceError(c, err, "Failed to update user")
	}
	return c.JSON(user)
}

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.Context())
	if err != nil {
		return mapServiceError(c, err, "Failed to load settings")
	}
	return c.JSON(settingsResponse(settings))
}

func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.SubscriptionPrice == nil || !req.SubscriptionPrice.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "subscription_price must be greater than 0"})
	}

	settings, err := h.settings.Update(c.Context(), services.UpdateSettingsInput{
		SubscriptionPrice: *req.SubscriptionPrice,
		PaymentLink:       req.PaymentLink,
		AdminPhone:        req.AdminPhone,
	})
	if err != nil {
		return mapServiceError(c, err, "Failed to save settings")
	}
	return c.JSON(settingsResponse(settings))
}

func settingsResponse(settings *models.AppSettings) fiber.Map {
	return fiber.Map{
		"settings":        settings,
		"price_formatted": services.FormatPrice(settings.SubscriptionPrice),
	}
}
