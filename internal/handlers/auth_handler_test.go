package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"github.com/saeid-a/AtlasCoachBack/internal/services"
	"github.com/saeid-a/AtlasCoachBack/pkg/utils"
	"github.com/shopspring/decimal"
)

type stubAccountService struct {
	profile     *models.UserProfile
	onboardErr  error
	getErr      error
	lastOnboard models.UserProfile
	lastPhone   string
}

func (s *stubAccountService) Onboard(_ context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	s.lastOnboard = profile
	if s.onboardErr != nil {
		return nil, s.onboardErr
	}
	profile.Phone = utils.NormalizePhone(profile.Phone)
	return &profile, nil
}

func (s *stubAccountService) Get(_ context.Context, phone string) (*models.UserProfile, error) {
	s.lastPhone = phone
	return s.profile, s.getErr
}

type stubAdminAuthenticator struct {
	phone string
	err   error
}

func (s *stubAdminAuthenticator) AuthenticateAdmin(_ context.Context, _, _ string) (string, error) {
	return s.phone, s.err
}

type stubSettingsService struct {
	settings  *models.AppSettings
	err       error
	lastInput services.UpdateSettingsInput
}

func (s *stubSettingsService) Get(_ context.Context) (*models.AppSettings, error) {
	return s.settings, s.err
}

func (s *stubSettingsService) Update(_ context.Context, input services.UpdateSettingsInput) (*models.AppSettings, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppSettings{
		SubscriptionPrice: input.SubscriptionPrice,
		PaymentLink:       input.PaymentLink,
		AdminPhone:        input.AdminPhone,
	}, nil
}

func newAuthTestApp(accounts *stubAccountService, admins *stubAdminAuthenticator) *fiber.App {
	settings := &stubSettingsService{settings: &models.AppSettings{SubscriptionPrice: decimal.NewFromInt(17000)}}
	handler := NewAuthHandler(accounts, admins, settings, "secret")

	app := fiber.New()
	app.Post("/api/auth/onboarding", handler.Onboarding)
	app.Post("/api/auth/login", handler.Login)
	app.Post("/api/auth/admin/login", handler.AdminLogin)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func onboardingPayload() map[string]any {
	return map[string]any{
		"phone":        "+54 9 11 2233-4455",
		"name":         "Ana",
		"sex":          "female",
		"age":          30,
		"weight_kg":    62.5,
		"height_cm":    168,
		"experience":   "beginner",
		"availability": 3,
		"goal":         "Perder grasa",
		"routine_type": "Full body",
	}
}

func TestOnboardingReturnsToken(t *testing.T) {
	accounts := &stubAccountService{}
	app := newAuthTestApp(accounts, &stubAdminAuthenticator{})

	resp := postJSON(t, app, "/api/auth/onboarding", onboardingPayload())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	claims, err := utils.ValidateToken(body.Token, "secret")
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims.UserID != "+5491122334455" || claims.Role != models.RoleUser {
		t.Errorf("unexpected claims %+v", claims)
	}
	if accounts.lastOnboard.WeightKG != 62.5 {
		t.Errorf("unexpected onboarding input %+v", accounts.lastOnboard)
	}
}

func TestOnboardingValidation(t *testing.T) {
	app := newAuthTestApp(&stubAccountService{}, &stubAdminAuthenticator{})

	payload := onboardingPayload()
	payload["availability"] = 9
	resp := postJSON(t, app, "/api/auth/onboarding", payload)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestOnboardingConflict(t *testing.T) {
	app := newAuthTestApp(&stubAccountService{onboardErr: services.ErrConflict}, &stubAdminAuthenticator{})

	resp := postJSON(t, app, "/api/auth/onboarding", onboardingPayload())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestLoginUnknownPhone(t *testing.T) {
	app := newAuthTestApp(&stubAccountService{getErr: services.ErrProfileNotFound}, &stubAdminAuthenticator{})

	resp := postJSON(t, app, "/api/auth/login", map[string]string{"phone": "+5491122334455"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["onboarding_required"] != true {
		t.Errorf("expected onboarding_required flag, got %v", body)
	}
}

func TestLoginNormalizesPhone(t *testing.T) {
	accounts := &stubAccountService{profile: &models.UserProfile{Phone: "+5491122334455", Name: "Ana"}}
	app := newAuthTestApp(accounts, &stubAdminAuthenticator{})

	resp := postJSON(t, app, "/api/auth/login", map[string]string{"phone": "+54 9 11 2233 4455"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if accounts.lastPhone != "+5491122334455" {
		t.Errorf("expected normalized lookup, got %q", accounts.lastPhone)
	}
}

func TestAdminLogin(t *testing.T) {
	app := newAuthTestApp(&stubAccountService{}, &stubAdminAuthenticator{phone: "+541155550000"})

	resp := postJSON(t, app, "/api/auth/admin/login", map[string]string{"phone": "+541155550000", "password": "x"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	denied := newAuthTestApp(&stubAccountService{}, &stubAdminAuthenticator{err: services.ErrInvalidCredentials})
	resp = postJSON(t, denied, "/api/auth/admin/login", map[string]string{"phone": "+541155550000", "password": "x"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
