package models

import (
	"time"

	"gorm.io/gorm"
)

// WeightEntry is an append-only weight log row.
type WeightEntry struct {
	gorm.Model
	UserID uint      `gorm:"index;not null" json:"userId"`
	Date   time.Time `gorm:"index;not null" json:"date"`
	Weight float64   `json:"weight"` // kg, 30-300
	Note   string    `json:"note,omitempty"`
}

// ComplianceEntry records that every meal of a plan was completed.
// Written exactly once per plan, when the last meal flips to completed.
type ComplianceEntry struct {
	gorm.Model
	UserID         uint      `gorm:"index;not null" json:"userId"`
	MealPlanID     uint      `gorm:"uniqueIndex;not null" json:"mealPlanId"`
	Date           time.Time `gorm:"index;not null" json:"date"`
	MealsCompleted int       `json:"mealsCompleted"`
	TotalMeals     int       `json:"totalMeals"`
	ComplianceRate float64   `json:"complianceRate"` // mealsCompleted / totalMeals
}
