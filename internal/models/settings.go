package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppSettings struct {
	SubscriptionPrice decimal.Decimal `json:"subscription_price"`
	PaymentLink       string          `json:"payment_link"`
	AdminPhone        string          `json:"admin_phone"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty"`
}

type SubscriptionView struct {
	IsSubscribed   bool            `json:"is_subscribed"`
	Status         string          `json:"status"`
	Price          decimal.Decimal `json:"price"`
	PriceFormatted string          `json:"price_formatted"`
	PaymentLink    string          `json:"payment_link"`
	AdminPhone     string          `json:"admin_phone"`
}
