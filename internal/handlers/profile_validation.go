package handlers

import (
	"strings"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
	"github.com/saeid-a/AtlasCoachBack/pkg/utils"
)

var allowedSexes = map[string]struct{}{
	models.SexMale:   {},
	models.SexFemale: {},
}

var allowedExperience = map[string]struct{}{
	models.ExperienceBeginner:     {},
	models.ExperienceIntermediate: {},
	models.ExperienceAdvanced:     {},
}

type profileRequest struct {
	Phone        string  `json:"phone"`
	Name         string  `json:"name"`
	Sex          string  `json:"sex"`
	Age          int     `json:"age"`
	WeightKG     float64 `json:"weight_kg"`
	HeightCM     float64 `json:"height_cm"`
	Experience   string  `json:"experience"`
	Availability int     `json:"availability"`
	Goal         string  `json:"goal"`
	RoutineType  string  `json:"routine_type"`
	Injuries     string  `json:"injuries"`
}

func (r profileRequest) toModel() models.UserProfile {
	return models.UserProfile{
		Phone:        r.Phone,
		Name:         r.Name,
		Sex:          r.Sex,
		Age:          r.Age,
		WeightKG:     r.WeightKG,
		HeightCM:     r.HeightCM,
		Experience:   r.Experience,
		Availability: r.Availability,
		Goal:         r.Goal,
		RoutineType:  r.RoutineType,
		Injuries:     r.Injuries,
	}
}

func validateOnboardingRequest(req profileRequest) string {
	if utils.NormalizePhone(req.Phone) == "" {
		return "phone must be a valid phone number"
	}
	return validateProfileRequest(req)
}

func validateProfileRequest(req profileRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if _, ok := allowedSexes[strings.ToLower(strings.TrimSpace(req.Sex))]; !ok {
		return "sex must be one of: male, female"
	}
	if req.Age <= 0 || req.Age > 120 {
		return "age must be between 1 and 120"
	}
	if req.WeightKG <= 0 {
		return "weight_kg must be greater than 0"
	}
	if req.HeightCM <= 0 {
		return "height_cm must be greater than 0"
	}
	if _, ok := allowedExperience[strings.ToLower(strings.TrimSpace(req.Experience))]; !ok {
		return "experience must be one of: beginner, intermediate, advanced"
	}
	if req.Availability < 1 || req.Availability > 7 {
		return "availability must be between 1 and 7"
	}
	if strings.TrimSpace(req.Goal) == "" {
		return "goal is required"
	}
	if strings.TrimSpace(req.RoutineType) == "" {
		return "routine_type is required"
	}
	return ""
}
