package ai

import "github.com/sashabaranov/go-openai/jsonschema"

var macrosSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"protein": {Type: jsonschema.String},
		"carbs":   {Type: jsonschema.String},
		"fats":    {Type: jsonschema.String},
	},
	Required: []string{"protein", "carbs", "fats"},
}

// WorkoutPlanSchema mirrors models.WorkoutPlan.
var WorkoutPlanSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"title":       {Type: jsonschema.String},
		"description": {Type: jsonschema.String},
		"daily_workouts": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"day":   {Type: jsonschema.Integer, Description: "Training day number, starting at 1"},
					"focus": {Type: jsonschema.String, Description: "Muscle groups or goal of the day"},
					"exercises": {
						Type: jsonschema.Array,
						Items: &jsonschema.Definition{
							Type: jsonschema.Object,
							Properties: map[string]jsonschema.Definition{
								"name":        {Type: jsonschema.String},
								"sets":        {Type: jsonschema.Integer},
								"reps":        {Type: jsonschema.String, Description: "Repetitions or range, e.g. 8-12"},
								"rest":        {Type: jsonschema.String, Description: "Rest between sets, e.g. 90s"},
								"description": {Type: jsonschema.String, Description: "Short technique cue"},
							},
							Required: []string{"name", "sets", "reps", "rest", "description"},
						},
					},
				},
				Required: []string{"day", "focus", "exercises"},
			},
		},
	},
	Required: []string{"title", "description", "daily_workouts"},
}

// NutritionPlanSchema mirrors models.NutritionPlan.
var NutritionPlanSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"title":       {Type: jsonschema.String},
		"description": {Type: jsonschema.String},
		"daily_plan": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"day":   {Type: jsonschema.String, Description: "Weekday name"},
					"focus": {Type: jsonschema.String},
					"meals": {
						Type: jsonschema.Array,
						Items: &jsonschema.Definition{
							Type: jsonschema.Object,
							Properties: map[string]jsonschema.Definition{
								"name":   {Type: jsonschema.String},
								"foods":  {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
								"macros": macrosSchema,
							},
							Required: []string{"name", "foods"},
						},
					},
					"daily_totals": {
						Type: jsonschema.Object,
						Properties: map[string]jsonschema.Definition{
							"calories": {Type: jsonschema.String},
							"protein":  {Type: jsonschema.String},
							"carbs":    {Type: jsonschema.String},
							"fats":     {Type: jsonschema.String},
						},
						Required: []string{"calories", "protein", "carbs", "fats"},
					},
				},
				Required: []string{"day", "meals"},
			},
		},
	},
	Required: []string{"title", "description", "daily_plan"},
}

const GenerateNewPlansTool = "generateNewPlans"

// CoachTools are the functions the coach model may call.
var CoachTools = []Tool{
	{
		Name: GenerateNewPlansTool,
		Description: "Generates a brand new workout plan and nutrition plan for the user from their current profile. " +
			"Call it only when the user explicitly asks for new or different plans.",
		Parameters: &jsonschema.Definition{
			Type:       jsonschema.Object,
			Properties: map[string]jsonschema.Definition{},
		},
	},
}
