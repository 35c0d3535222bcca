package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"github.com/shopspring/decimal"
)

type stubRegistryService struct {
	lastFilter string
	lastPhone  string
}

func (s *stubRegistryService) List(_ context.Context, filter string) ([]models.RegisteredUser, error) {
	s.lastFilter = filter
	return []models.RegisteredUser{{Phone: "+5491122334455", Name: "Ana", IsActive: true}}, nil
}

func (s *stubRegistryService) Toggle(_ context.Context, phone string) (*models.RegisteredUser, error) {
	s.lastPhone = phone
	return &models.RegisteredUser{Phone: phone, IsActive: false}, nil
}

func newAdminTestApp(registry *stubRegistryService, settings *stubSettingsService) *fiber.App {
	handler := NewAdminHandler(registry, settings)

	app := fiber.New()
	app.Get("/admin/users", handler.ListUsers)
	app.Put("/admin/users/:phone/toggle", handler.ToggleUser)
	app.Put("/admin/settings", handler.UpdateSettings)
	return app
}

func TestAdminListUsersFilter(t *testing.T) {
	registry := &stubRegistryService{}
	app := newAdminTestApp(registry, &stubSettingsService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/users?q=ana", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK || registry.lastFilter != "ana" {
		t.Fatalf("unexpected status %d filter %q", resp.StatusCode, registry.lastFilter)
	}
}

func TestAdminToggleUnescapesPhone(t *testing.T) {
	registry := &stubRegistryService{}
	app := newAdminTestApp(registry, &stubSettingsService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/admin/users/%2B5491122334455/toggle", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if registry.lastPhone != "+5491122334455" {
		t.Errorf("unexpected phone %q", registry.lastPhone)
	}
}

func TestAdminUpdateSettingsRejectsZeroPrice(t *testing.T) {
	settings := &stubSettingsService{}
	app := newAdminTestApp(&stubRegistryService{}, settings)

	req := httptest.NewRequest(http.MethodPut, "/admin/settings", bytes.NewBufferString(`{"subscription_price":0}`))
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

func TestAdminUpdateSettings(t *testing.T) {
	settings := &stubSettingsService{}
	app := newAdminTestApp(&stubRegistryService{}, settings)

	req := httptest.NewRequest(http.MethodPut, "/admin/settings",
		bytes.NewBufferString(`{"subscription_price":"19500","payment_link":"https://mpago.la/x","admin_phone":"+541155550000"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !settings.lastInput.SubscriptionPrice.Equal(decimal.NewFromInt(19500)) || settings.lastInput.PaymentLink != "https://mpago.la/x" {
		t.Errorf("unexpected input %+v", settings.lastInput)
	}
}
