package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Name         string `gorm:"not null" json:"name"`
	PasswordHash string `gorm:"not null" json:"-"`

	Profile *UserProfile `json:"profile,omitempty"`
}

// UserProfile drives the calorie/macro targets. One per user,
// created on first save and updated in place afterwards.
type UserProfile struct {
	gorm.Model
	UserID            uint     `gorm:"uniqueIndex;not null" json:"userId"`
	Age               int      `json:"age"`               // years, 15-100
	Gender            string   `json:"gender"`            // "male"|"female"
	Height            float64  `json:"height"`            // cm, 120-250
	Weight            float64  `json:"weight"`            // kg, 30-300
	ActivityLevel     string   `json:"activityLevel"`     // sedentary .. extra active
	DietaryPreference string   `json:"dietaryPreference"` // "veg"|"non-veg"
	Goal              string   `json:"goal"`              // "lose weight"|"gain weight"|maintain
	MealFrequency     int      `json:"mealFrequency"`     // meals per day, 1-3
	BodyFatPercentage *float64 `json:"bodyFatPercentage,omitempty"`
	ProfilePicture    string   `json:"profilePicture,omitempty"`
}
