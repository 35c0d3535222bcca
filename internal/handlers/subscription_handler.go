package handlers

import (
	"context"
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AtlasCoachBack/internal/middleware"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
	statusws "github.com/saeid-a/AtlasCoachBack/internal/websocket"
	"github.com/saeid-a/AtlasCoachBack/pkg/utils"
)

type subscriptionService interface {
	View(ctx context.Context, phone string) (*models.SubscriptionView, error)
	Status(ctx context.Context, phone string) (models.SubscriptionStatus, error)
}

type SubscriptionHandler struct {
	service   subscriptionService
	hub       *statusws.Hub
	jwtSecret string
}

func NewSubscriptionHandler(service subscriptionService, hub *statusws.Hub, jwtSecret string) *SubscriptionHandler {
	return &SubscriptionHandler{
		service:   service,
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

func (h *SubscriptionHandler) GetSubscription(c *fiber.Ctx) error {
	phone, ok := currentPhone(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	view, err := h.service.View(c.Context(), phone)
	if err != nil {
		return mapServiceError(c, err, "Failed to load subscription")
	}
	return c.JSON(view)
}

// WebSocketAuth accepts the token as a query parameter since browsers cannot
// set headers on websocket requests.
func (h *SubscriptionHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil || claims.Role != models.RoleUser {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("role", claims.Role)
	return c.Next()
}

// HandleWebSocket sends the current status on connect, then pushes changes.
func (h *SubscriptionHandler) HandleWebSocket(conn *websocket.Conn) {
	phone, _ := conn.Locals("user_id").(string)
	client := statusws.NewClient(h.hub, conn, phone)

	h.hub.Register(client)
	go client.WritePump()
	client.SendStatus(h.service)
	client.ReadPump(h.service)
}

func (h *SubscriptionHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		if bearer, ok := middleware.BearerToken(c.Get("Authorization")); ok {
			tokenString = bearer
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}
