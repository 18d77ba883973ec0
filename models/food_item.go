package models

import "gorm.io/gorm"

// FoodItem is a read-only catalog entry. Nutrient values are per serving.
type FoodItem struct {
	gorm.Model
	Name         string  `gorm:"not null" json:"name"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fats         float64 `json:"fats"`
	ServingSize  float64 `json:"servingSize"`
	ServingUnit  string  `json:"servingUnit"`
	Category     string  `json:"category"`
	IsVegetarian bool    `json:"isVegetarian"`
}
