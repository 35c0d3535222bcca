package ai

import (
	"fmt"
	"strings"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

var languageNames = map[string]string{
	"es-AR": "Spanish as spoken in Argentina",
	"es":    "Spanish",
	"en":    "English",
	"en-US": "English",
	"pt-BR": "Brazilian Portuguese",
}

var regionalFoods = map[string]string{
	"es-AR": "foods easy to find in Argentina (beef cuts, chicken, eggs, lentils, rice, pasta, seasonal vegetables)",
	"pt-BR": "foods easy to find in Brazil (rice, beans, chicken, eggs, cassava, tropical fruits)",
}

func languageName(locale string) string {
	if name, ok := languageNames[locale]; ok {
		return name
	}
	if locale == "" {
		return "English"
	}
	return locale
}

func profileSummary(profile models.UserProfile) string {
	lines := []string{
		fmt.Sprintf("- Name: %s", profile.Name),
		fmt.Sprintf("- Sex: %s", profile.Sex),
		fmt.Sprintf("- Age: %d", profile.Age),
		fmt.Sprintf("- Weight: %.1f kg", profile.WeightKG),
		fmt.Sprintf("- Height: %.0f cm", profile.HeightCM),
		fmt.Sprintf("- Experience: %s", profile.Experience),
		fmt.Sprintf("- Training days per week: %d", profile.Availability),
		fmt.Sprintf("- Goal: %s", profile.Goal),
		fmt.Sprintf("- Preferred routine: %s", profile.RoutineType),
	}
	injuries := strings.TrimSpace(profile.Injuries)
	if injuries == "" {
		injuries = "none reported"
	}
	lines = append(lines, fmt.Sprintf("- Injuries or limitations: %s", injuries))
	return strings.Join(lines, "\n")
}

func isHeavyDuty(routineType string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(routineType, "-", " "))
	return strings.Contains(normalized, "heavy duty")
}

func WorkoutPrompt(profile models.UserProfile, locale string) string {
	var b strings.Builder
	b.WriteString("You are an elite strength and conditioning coach. Design a weekly workout plan for this client:\n")
	b.WriteString(profileSummary(profile))
	b.WriteString("\n\nRules:\n")
	fmt.Fprintf(&b, "- Create exactly %d training days, numbered from 1.\n", profile.Availability)
	b.WriteString("- Every day has a clear focus and 4 to 8 exercises ordered as they should be performed.\n")
	b.WriteString("- Adapt volume and exercise selection to the experience level and avoid movements that aggravate the reported injuries.\n")
	b.WriteString("- Give each exercise a one or two sentence technique cue.\n")
	if isHeavyDuty(profile.RoutineType) {
		b.WriteString("- Follow Heavy Duty principles: one or two working sets taken to failure, long rests, low weekly frequency per muscle.\n")
		b.WriteString("- Use pre-exhaustion: an isolation exercise immediately followed by a compound movement for the same muscle, with no rest in between.\n")
	}
	fmt.Fprintf(&b, "- Write every text field in %s.\n", languageName(locale))
	b.WriteString("Answer only with the JSON document.")
	return b.String()
}

func NutritionPrompt(profile models.UserProfile, locale string) string {
	var b strings.Builder
	b.WriteString("You are a sports nutritionist. Design a 7 day meal plan (Monday to Sunday) for this client:\n")
	b.WriteString(profileSummary(profile))
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Set calories and macronutrients to support the goal, body weight and training frequency.\n")
	b.WriteString("- Each day lists its meals with concrete foods and portions, macros per meal and daily totals.\n")
	if foods, ok := regionalFoods[locale]; ok {
		fmt.Fprintf(&b, "- Prefer %s.\n", foods)
	} else {
		b.WriteString("- Prefer common, affordable foods.\n")
	}
	fmt.Fprintf(&b, "- Write every text field in %s.\n", languageName(locale))
	b.WriteString("Answer only with the JSON document.")
	return b.String()
}

func CoachSystemPrompt(profile models.UserProfile, locale string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are Atlas, a friendly and motivating personal coach talking to %s.\n", profile.Name)
	b.WriteString("Answer questions about training, technique, nutrition and recovery briefly and practically.\n")
	b.WriteString("Client profile:\n")
	b.WriteString(profileSummary(profile))
	fmt.Fprintf(&b, "\nWhen the client asks for new or different plans, call the %s tool and then tell them the result.\n", GenerateNewPlansTool)
	b.WriteString("Do not give medical diagnoses; recommend a professional for pain or injuries.\n")
	fmt.Fprintf(&b, "Always reply in %s.", languageName(locale))
	return b.String()
}

func IllustrationPrompt(exerciseName string) string {
	return fmt.Sprintf(
		"Clean instructional illustration of an athlete performing the exercise %q in a gym, "+
			"side view, correct form, neutral background, no text.",
		exerciseName,
	)
}
