package models

import "time"

const (
	CoachRoleUser      = "user"
	CoachRoleAssistant = "assistant"
)

type CoachMessage struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CoachReply struct {
	Message          CoachMessage `json:"message"`
	PlansRegenerated bool         `json:"plans_regenerated"`
}
