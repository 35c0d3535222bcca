package models

import "time"

type Exercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	Rest        string `json:"rest"`
	Description string `json:"description,omitempty"`
}

type DailyWorkout struct {
	Day       int        `json:"day"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

type WorkoutPlan struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	DailyWorkouts []DailyWorkout `json:"daily_workouts"`
}

// Day returns the workout scheduled for the given day number.
func (p *WorkoutPlan) Day(day int) (*DailyWorkout, bool) {
	if p == nil {
		return nil, false
	}
	for i := range p.DailyWorkouts {
		if p.DailyWorkouts[i].Day == day {
			return &p.DailyWorkouts[i], true
		}
	}
	return nil, false
}

type Macros struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fats    string `json:"fats"`
}

type DailyTotals struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fats     string `json:"fats"`
}

type Meal struct {
	Name   string   `json:"name"`
	Foods  []string `json:"foods"`
	Macros *Macros  `json:"macros,omitempty"`
}

type DailyNutrition struct {
	Day         string       `json:"day"`
	Focus       string       `json:"focus,omitempty"`
	Meals       []Meal       `json:"meals"`
	DailyTotals *DailyTotals `json:"daily_totals,omitempty"`
}

type NutritionPlan struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	DailyPlan   []DailyNutrition `json:"daily_plan"`
}

// PlanSet holds both plans. They are stored and replaced together.
type PlanSet struct {
	Workout     WorkoutPlan   `json:"workout_plan"`
	Nutrition   NutritionPlan `json:"nutrition_plan"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// CompletionMark identifies a checked exercise within a day. Occurrence
// tells apart repeated entries of the same exercise, counted from 0 in plan
// order, so marks survive reordering.
type CompletionMark struct {
	Name       string
	Occurrence int
}

type DayProgress struct {
	Day              int      `json:"day"`
	Completed        []string `json:"completed"`
	CompletedIndexes []int    `json:"completed_indexes"`
	Total            int      `json:"total"`
	Percentage       int      `json:"percentage"`
}
