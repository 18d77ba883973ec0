package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/Yasaswiniboorada/dietplanner/models"

	"gorm.io/gorm"
)

type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

// FoodFilter narrows List results; zero values mean "no filter".
type FoodFilter struct {
	Category     string
	IsVegetarian *bool
}

func (s *FoodService) List(filter FoodFilter) ([]models.FoodItem, error) {
	q := s.db.Model(&models.FoodItem{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.IsVegetarian != nil {
		q = q.Where("is_vegetarian = ?", *filter.IsVegetarian)
	}

	var items []models.FoodItem
	err := q.Find(&items).Error
	return items, err
}

func (s *FoodService) Get(id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	err := s.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: food item not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *FoodService) Categories() ([]string, error) {
	var categories []string
	err := s.db.Model(&models.FoodItem{}).
		Distinct("category").
		Pluck("category", &categories).Error
	return categories, err
}

// Recommend returns up to count random catalog items matching the filter.
func (s *FoodService) Recommend(filter FoodFilter, count int, rng *rand.Rand) ([]models.FoodItem, error) {
	if count <= 0 {
		count = 3
	}

	items, err := s.List(filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no matching food items", ErrNotFound)
	}

	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	if len(items) > count {
		items = items[:count]
	}
	return items, nil
}

type FoodItemInput struct {
	Name         string  `json:"name" binding:"required"`
	Calories     float64 `json:"calories" binding:"gte=0"`
	Protein      float64 `json:"protein" binding:"gte=0"`
	Carbs        float64 `json:"carbs" binding:"gte=0"`
	Fats         float64 `json:"fats" binding:"gte=0"`
	ServingSize  float64 `json:"servingSize" binding:"required,gt=0"`
	ServingUnit  string  `json:"servingUnit" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	IsVegetarian bool    `json:"isVegetarian"`
}

func (s *FoodService) Create(input FoodItemInput) (*models.FoodItem, error) {
	item := models.FoodItem{
		Name:         input.Name,
		Calories:     input.Calories,
		Protein:      input.Protein,
		Carbs:        input.Carbs,
		Fats:         input.Fats,
		ServingSize:  input.ServingSize,
		ServingUnit:  input.ServingUnit,
		Category:     input.Category,
		IsVegetarian: input.IsVegetarian,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *FoodService) Update(id uint, input FoodItemInput) (*models.FoodItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Calories = input.Calories
	item.Protein = input.Protein
	item.Carbs = input.Carbs
	item.Fats = input.Fats
	item.ServingSize = input.ServingSize
	item.ServingUnit = input.ServingUnit
	item.Category = input.Category
	item.IsVegetarian = input.IsVegetarian

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *FoodService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.db.Delete(&models.FoodItem{}, id).Error
}

// SeedFromFile loads the catalog from a JSON file when the table is empty.
func (s *FoodService) SeedFromFile(path string) error {
	var count int64
	if err := s.db.Model(&models.FoodItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var items []models.FoodItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("parsing seed file: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	return s.db.Create(&items).Error
}
