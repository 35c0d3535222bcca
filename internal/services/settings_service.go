package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"github.com/saeid-a/AtlasCoachBack/pkg/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.MustParse("es-AR"))

type settingsStore interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Save(ctx context.Context, settings models.AppSettings) (*models.AppSettings, error)
}

type SettingsService struct {
	store    settingsStore
	defaults models.AppSettings
}

func NewSettingsService(store settingsStore, defaultPrice decimal.Decimal, defaultAdminPhone string) *SettingsService {
	return &SettingsService{
		store: store,
		defaults: models.AppSettings{
			SubscriptionPrice: defaultPrice,
			AdminPhone:        utils.NormalizePhone(defaultAdminPhone),
		},
	}
}

type UpdateSettingsInput struct {
	SubscriptionPrice decimal.Decimal
	PaymentLink       string
	AdminPhone        string
}

// Get returns the stored settings, or the configured defaults before the
// administrator saves anything. An empty stored admin phone falls back to the
// configured one.
func (s *SettingsService) Get(ctx context.Context) (*models.AppSettings, error) {
	settings, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			defaults := s.defaults
			return &defaults, nil
		}
		return nil, err
	}
	if settings.AdminPhone == "" {
		settings.AdminPhone = s.defaults.AdminPhone
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, input UpdateSettingsInput) (*models.AppSettings, error) {
	if !input.SubscriptionPrice.IsPositive() {
		return nil, ErrInvalidInput
	}

	link := strings.TrimSpace(input.PaymentLink)
	if link != "" && !isHTTPURL(link) {
		return nil, ErrInvalidInput
	}

	adminPhone := ""
	if strings.TrimSpace(input.AdminPhone) != "" {
		adminPhone = utils.NormalizePhone(input.AdminPhone)
		if adminPhone == "" {
			return nil, ErrInvalidInput
		}
	}

	return s.store.Save(ctx, models.AppSettings{
		SubscriptionPrice: input.SubscriptionPrice,
		PaymentLink:       link,
		AdminPhone:        adminPhone,
	})
}

// FormatPrice renders an amount the way Argentine pesos are shown to users,
// e.g. "$ 17.000".
func FormatPrice(amount decimal.Decimal) string {
	return "$ " + pricePrinter.Sprintf("%d", amount.Round(0).IntPart())
}

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
