package models

import "time"

type SetLog struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type ExerciseLog struct {
	ExerciseName string   `json:"exercise_name"`
	Sets         []SetLog `json:"sets"`
}

type WorkoutLog struct {
	ID           int64         `json:"id"`
	Date         string        `json:"date"`
	WorkoutFocus string        `json:"workout_focus"`
	Exercises    []ExerciseLog `json:"exercises"`
	CreatedAt    time.Time     `json:"created_at"`
}
