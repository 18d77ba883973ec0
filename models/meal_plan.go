package models

import (
	"time"

	"gorm.io/gorm"
)

// MealPlan is one user's plan for one calendar day. The (user_id, date)
// pair is unique; regeneration hard-deletes the old plan first, so the
// index never sees soft-deleted leftovers.
type MealPlan struct {
	gorm.Model
	UserID        uint      `gorm:"index:idx_plan_user_date,unique;not null" json:"userId"`
	Date          time.Time `gorm:"index:idx_plan_user_date,unique;not null" json:"date"`
	TotalCalories float64   `json:"totalCalories"`
	TotalProtein  float64   `json:"totalProtein"`
	TotalCarbs    float64   `json:"totalCarbs"`
	TotalFats     float64   `json:"totalFats"`
	Completed     bool      `json:"completed"`

	Meals []Meal `json:"meals"`
}

// Meal is one slot (breakfast/lunch/dinner) in a plan. Totals are the
// sums over its line items; Completed flips one way, Pending -> Completed.
type Meal struct {
	gorm.Model
	MealPlanID    uint    `gorm:"index;not null" json:"mealPlanId"`
	Type          string  `gorm:"not null" json:"type"`
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFats     float64 `json:"totalFats"`
	Completed     bool    `json:"completed"`

	FoodItems []MealFoodItem `json:"foodItems"`
}

// MealFoodItem is a line item: quantity is in multiples of the food
// item's serving size, never below 0.1.
type MealFoodItem struct {
	gorm.Model
	MealID     uint    `gorm:"index;not null" json:"mealId"`
	FoodItemID uint    `gorm:"not null" json:"foodItemId"`
	Quantity   float64 `json:"quantity"`

	FoodItem FoodItem `json:"foodItem"`
}
