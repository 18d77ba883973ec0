package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Yasaswiniboorada/dietplanner/models"

	"gorm.io/gorm"
)

// Per-meal bounds around the per-slot calorie target. A meal is filled
// until it reaches the floor, and no draw may push it past the ceiling.
const (
	mealCalorieFloor   = 0.9
	mealCalorieCeiling = 1.1
	maxItemsPerMeal    = 5
	maxDrawsPerMeal    = 30
)

// MealPlanService generates a day's plan by randomized greedy selection
// from the food catalog. Randomness comes from the injected source, so
// tests can seed it deterministically.
type MealPlanService struct {
	db        *gorm.DB
	nutrition *NutritionService
	rng       *rand.Rand
}

func NewMealPlanService(db *gorm.DB, rng *rand.Rand) *MealPlanService {
	return &MealPlanService{db: db, nutrition: NewNutritionService(), rng: rng}
}

func mealSlots(frequency int) []string {
	switch frequency {
	case 1:
		return []string{"lunch"}
	case 2:
		return []string{"breakfast", "dinner"}
	default:
		return []string{"breakfast", "lunch", "dinner"}
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Generate builds and stores the plan for (userID, date), replacing any
// existing plan for that day. Delete-then-insert runs in one transaction
// so a failed generation never leaves the day empty.
func (s *MealPlanService) Generate(userID uint, date time.Time) (*models.MealPlan, error) {
	day := dateOnly(date)

	var profile models.UserProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: profile not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	summary := s.nutrition.Calculate(&profile)

	eligible, err := s.eligibleFoodItems(&profile)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: no eligible food items", ErrNotFound)
	}

	slots := mealSlots(profile.MealFrequency)
	perMealCalories := summary.TargetCalories / float64(len(slots))

	plan := models.MealPlan{UserID: userID, Date: day}
	for _, slot := range slots {
		meal := s.buildMeal(slot, perMealCalories, eligible)
		plan.TotalCalories += meal.TotalCalories
		plan.TotalProtein += meal.TotalProtein
		plan.TotalCarbs += meal.TotalCarbs
		plan.TotalFats += meal.TotalFats
		plan.Meals = append(plan.Meals, meal)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := deletePlanForDay(tx, userID, day); err != nil {
			return err
		}
		return tx.Create(&plan).Error
	})
	if err != nil {
		return nil, err
	}

	return s.load(plan.ID)
}

// Current returns today's plan, generating one if the user has none yet.
func (s *MealPlanService) Current(userID uint) (*models.MealPlan, error) {
	today := dateOnly(time.Now().UTC())

	var plan models.MealPlan
	err := s.db.
		Preload("Meals.FoodItems.FoodItem").
		Where("user_id = ? AND date = ?", userID, today).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.Generate(userID, today)
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *MealPlanService) History(userID uint, from, to *time.Time) ([]models.MealPlan, error) {
	q := s.db.
		Preload("Meals").
		Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("date >= ?", dateOnly(*from))
	}
	if to != nil {
		q = q.Where("date <= ?", dateOnly(*to))
	}

	var plans []models.MealPlan
	err := q.Order("date DESC").Find(&plans).Error
	return plans, err
}

func (s *MealPlanService) eligibleFoodItems(profile *models.UserProfile) ([]models.FoodItem, error) {
	q := s.db.Model(&models.FoodItem{})
	pref := strings.ToLower(profile.DietaryPreference)
	if pref != "non-veg" && pref != "non-vegetarian" {
		q = q.Where("is_vegetarian = ?", true)
	}

	var items []models.FoodItem
	err := q.Find(&items).Error
	return items, err
}

// buildMeal fills one slot by uniform random draws at quantity 1. A draw
// is rejected when it would push the meal past the calorie ceiling;
// duplicates stay as separate lines. The draw budget keeps the loop
// bounded when every remaining draw would be rejected, which means a meal
// can legitimately end below the floor.
func (s *MealPlanService) buildMeal(slot string, targetCalories float64, items []models.FoodItem) models.Meal {
	meal := models.Meal{Type: slot}

	for draws := 0; draws < maxDrawsPerMeal; draws++ {
		if meal.TotalCalories >= targetCalories*mealCalorieFloor ||
			len(meal.FoodItems) >= maxItemsPerMeal {
			break
		}

		item := items[s.rng.Intn(len(items))]
		if meal.TotalCalories+item.Calories > targetCalories*mealCalorieCeiling {
			continue
		}
		addLine(&meal, item, 1)
	}

	// Never serve an empty meal: when every draw was rejected, fall back
	// to a single line of the lightest eligible item.
	if len(meal.FoodItems) == 0 {
		lightest := items[0]
		for _, item := range items[1:] {
			if item.Calories < lightest.Calories {
				lightest = item
			}
		}
		addLine(&meal, lightest, 1)
	}

	return meal
}

func addLine(meal *models.Meal, item models.FoodItem, quantity float64) {
	meal.FoodItems = append(meal.FoodItems, models.MealFoodItem{
		FoodItemID: item.ID,
		Quantity:   quantity,
	})
	meal.TotalCalories += item.Calories * quantity
	meal.TotalProtein += item.Protein * quantity
	meal.TotalCarbs += item.Carbs * quantity
	meal.TotalFats += item.Fats * quantity
}

// deletePlanForDay hard-deletes the existing plan and its children so the
// (user_id, date) unique index never trips over soft-deleted rows.
func deletePlanForDay(tx *gorm.DB, userID uint, day time.Time) error {
	var existing models.MealPlan
	err := tx.Where("user_id = ? AND date = ?", userID, day).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	mealIDs := tx.Model(&models.Meal{}).Select("id").Where("meal_plan_id = ?", existing.ID)
	if err := tx.Unscoped().Where("meal_id IN (?)", mealIDs).Delete(&models.MealFoodItem{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("meal_plan_id = ?", existing.ID).Delete(&models.Meal{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&models.MealPlan{}, existing.ID).Error
}

func (s *MealPlanService) load(planID uint) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.
		Preload("Meals.FoodItems.FoodItem").
		First(&plan, planID).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
