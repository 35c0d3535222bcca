package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"github.com/shopspring/decimal"
)

type SettingsRepository struct {
	db DBTX
}

func NewSettingsRepository(db DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns pgx.ErrNoRows until settings are saved for the first time.
func (r *SettingsRepository) Get(ctx context.Context) (*models.AppSettings, error) {
	query := `
		SELECT subscription_price::text, payment_link, admin_phone, updated_at
		FROM app_settings
		WHERE id = 1
	`
	return scanSettings(r.db.QueryRow(ctx, query))
}

func (r *SettingsRepository) Save(ctx context.Context, settings models.AppSettings) (*models.AppSettings, error) {
	query := `
		INSERT INTO app_settings (id, subscription_price, payment_link, admin_phone, updated_at)
		VALUES (1, $1::text::numeric, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET subscription_price = EXCLUDED.subscription_price,
			payment_link = EXCLUDED.payment_link,
			admin_phone = EXCLUDED.admin_phone,
			updated_at = EXCLUDED.updated_at
		RETURNING subscription_price::text, payment_link, admin_phone, updated_at
	`
	return scanSettings(r.db.QueryRow(ctx, query,
		settings.SubscriptionPrice.String(),
		settings.PaymentLink,
		settings.AdminPhone,
	))
}

func scanSettings(row rowScanner) (*models.AppSettings, error) {
	var settings models.AppSettings
	var price string
	var updatedAt time.Time
	if err := row.Scan(&price, &settings.PaymentLink, &settings.AdminPhone, &updatedAt); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("decode subscription price: %w", err)
	}
	settings.SubscriptionPrice = parsed
	settings.UpdatedAt = &updatedAt
	return &settings, nil
}
