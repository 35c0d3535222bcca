package models

import "time"

// RegisteredUser is one row of the subscriber registry, keyed by phone.
type RegisteredUser struct {
	Phone            string    `json:"phone"`
	Name             string    `json:"name"`
	IsActive         bool      `json:"is_active"`
	RegistrationDate time.Time `json:"registration_date"`
}

type SubscriptionStatus struct {
	Phone        string `json:"phone"`
	IsSubscribed bool   `json:"is_subscribed"`
	Registered   bool   `json:"registered"`
}
