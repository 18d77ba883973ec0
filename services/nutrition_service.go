package services

import (
	"strings"

	"github.com/Yasaswiniboorada/dietplanner/models"
)

// Macros is the daily gram target per macronutrient.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

type NutritionSummary struct {
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	TargetCalories float64 `json:"targetCalories"`
	Macros         Macros  `json:"macros"`
}

// NutritionService derives calorie and macro targets from a profile.
// Every method is a pure function of its input; unrecognized gender,
// activity level or goal strings fall back to defaults rather than erroring.
type NutritionService struct{}

func NewNutritionService() *NutritionService {
	return &NutritionService{}
}

// CalculateBMR uses the Mifflin-St Jeor equation. Anything other than
// "male" takes the female branch.
func (s *NutritionService) CalculateBMR(profile *models.UserProfile) float64 {
	bmr := 10*profile.Weight + 6.25*profile.Height - 5*float64(profile.Age)
	if strings.EqualFold(profile.Gender, "male") {
		return bmr + 5
	}
	return bmr - 161
}

func (s *NutritionService) CalculateTDEE(profile *models.UserProfile) float64 {
	multiplier := 1.2
	switch strings.ToLower(profile.ActivityLevel) {
	case "sedentary":
		multiplier = 1.2
	case "lightly active":
		multiplier = 1.375
	case "moderately active":
		multiplier = 1.55
	case "very active":
		multiplier = 1.725
	case "extra active":
		multiplier = 1.9
	}
	return s.CalculateBMR(profile) * multiplier
}

func (s *NutritionService) TargetCalories(profile *models.UserProfile) float64 {
	tdee := s.CalculateTDEE(profile)
	switch strings.ToLower(profile.Goal) {
	case "lose weight":
		return tdee * 0.8 // 20% deficit
	case "gain weight":
		return tdee * 1.2 // 20% surplus
	default:
		return tdee
	}
}

// Calculate returns the full summary: 30/40/30 protein/carbs/fats split
// at 4/4/9 kcal per gram.
func (s *NutritionService) Calculate(profile *models.UserProfile) NutritionSummary {
	target := s.TargetCalories(profile)
	return NutritionSummary{
		BMR:            s.CalculateBMR(profile),
		TDEE:           s.CalculateTDEE(profile),
		TargetCalories: target,
		Macros: Macros{
			Protein: target * 0.3 / 4,
			Carbs:   target * 0.4 / 4,
			Fats:    target * 0.3 / 9,
		},
	}
}
