package models

import "time"

type ExerciseIllustration struct {
	NameKey      string    `json:"-"`
	ExerciseName string    `json:"exercise_name"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
}
