package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	SexMale   = "male"
	SexFemale = "female"

	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

type UserProfile struct {
	Phone        string    `json:"phone"`
	Name         string    `json:"name"`
	Sex          string    `json:"sex"`
	Age          int       `json:"age"`
	WeightKG     float64   `json:"weight_kg"`
	HeightCM     float64   `json:"height_cm"`
	Experience   string    `json:"experience"`
	Availability int       `json:"availability"`
	Goal         string    `json:"goal"`
	RoutineType  string    `json:"routine_type"`
	Injuries     string    `json:"injuries"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
