package services

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/Yasaswiniboorada/dietplanner/models"
	"github.com/Yasaswiniboorada/dietplanner/testutil"

	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	items := []models.FoodItem{
		{Name: "Oatmeal", Calories: 150, Protein: 5, Carbs: 27, Fats: 3, ServingSize: 40, ServingUnit: "g", Category: "Grains", IsVegetarian: true},
		{Name: "Greek Yogurt", Calories: 100, Protein: 17, Carbs: 6, Fats: 0.7, ServingSize: 170, ServingUnit: "g", Category: "Dairy", IsVegetarian: true},
		{Name: "Lentil Curry", Calories: 230, Protein: 18, Carbs: 40, Fats: 0.8, ServingSize: 198, ServingUnit: "g", Category: "Legumes", IsVegetarian: true},
		{Name: "Brown Rice", Calories: 216, Protein: 5, Carbs: 45, Fats: 1.8, ServingSize: 195, ServingUnit: "g", Category: "Grains", IsVegetarian: true},
		{Name: "Tofu Stir Fry", Calories: 180, Protein: 15, Carbs: 9, Fats: 11, ServingSize: 150, ServingUnit: "g", Category: "Protein", IsVegetarian: true},
		{Name: "Chicken Breast", Calories: 165, Protein: 31, Carbs: 0, Fats: 3.6, ServingSize: 100, ServingUnit: "g", Category: "Protein", IsVegetarian: false},
		{Name: "Salmon Fillet", Calories: 208, Protein: 20, Carbs: 0, Fats: 13, ServingSize: 100, ServingUnit: "g", Category: "Protein", IsVegetarian: false},
		{Name: "Beef Stew", Calories: 235, Protein: 20, Carbs: 16, Fats: 10, ServingSize: 245, ServingUnit: "g", Category: "Protein", IsVegetarian: false},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("seeding catalog: %v", err)
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{Email: email, Name: "Test User", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return &user
}

func createTestProfile(t *testing.T, db *gorm.DB, userID uint, frequency int, preference string) *models.UserProfile {
	t.Helper()

	profile := models.UserProfile{
		UserID:            userID,
		Age:               25,
		Gender:            "male",
		Height:            175,
		Weight:            70,
		ActivityLevel:     "sedentary",
		DietaryPreference: preference,
		Goal:              "maintain",
		MealFrequency:     frequency,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("creating profile: %v", err)
	}
	return &profile
}

func newTestGenerator(db *gorm.DB, seed int64) *MealPlanService {
	return NewMealPlanService(db, rand.New(rand.NewSource(seed)))
}

func TestGenerateTotalsAreConsistent(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedCatalog(t, db)
	user := createTestUser(t, db, "totals@example.com")
	createTestProfile(t, db, user.ID, 3, "non-veg")

	plan, err := newTestGenerator(db, 1).Generate(user.ID, time.Now())
	if err != nil {
		t.Fatalf("generating plan: %v", err)
	}

	var mealCalories, mealProtein, mealCarbs, mealFats float64
	for _, meal := range plan.Meals {
		mealCalories += meal.TotalCalories
		mealProtein += meal.TotalProtein
		mealCarbs += meal.TotalCarbs
		mealFats += meal.TotalFats

		var lineCalories float64
		for _, line := range meal.FoodItems {
			if line.FoodItem.ID == 0 {
				t.Fatal("expected food item to be preloaded on each line")
			}
			lineCalories += line.Quantity * line.FoodItem.Calories
			if line.Quantity < 0.1 {
				t.Errorf("line quantity %v below minimum", line.Quantity)
			}
		}
		if math.Abs(lineCalories-meal.TotalCalories) > 1e-6 {
			t.Errorf("meal %s: line calories %v != meal total %v", meal.Type, lineCalories, meal.TotalCalories)
		}
	}

	if math.Abs(mealCalories-plan.TotalCalories) > 1e-6 {
		t.Errorf("meal calories %v != plan total %v", mealCalories, plan.TotalCalories)
	}
	if math.Abs(mealProtein-plan.TotalProtein) > 1e-6 ||
		math.Abs(mealCarbs-plan.TotalCarbs) > 1e-6 ||
		math.Abs(mealFats-plan.TotalFats) > 1e-6 {
		t.Error("plan macro totals do not match meal sums")
	}
}

func TestGenerateMealSlots(t *testing.T) {
	tests := []struct {
		frequency int
		want      []string
	}{
		{1, []string{"lunch"}},
		{2, []string{"breakfast", "dinner"}},
		{3, []string{"breakfast", "lunch", "dinner"}},
	}

	for _, tt := range tests {
		db := testutil.NewTestDB(t)
		seedCatalog(t, db)
		user := createTestUser(t, db, "slots@example.com")
		createTestProfile(t, db, user.ID, tt.frequency, "non-veg")

		plan, err := newTestGenerator(db, 7).Generate(user.ID, time.Now())
		if err != nil {
			t.Fatalf("frequency %d: generating plan: %v", tt.frequency, err)
		}

		if len(plan.Meals) != len(tt.want) {
			t.Fatalf("frequency %d: got %d meals, want %d", tt.frequency, len(plan.Meals), len(tt.want))
		}
		got := map[string]bool{}
		for _, meal := range plan.Meals {
			got[meal.Type] = true
		}
		for _, slot := range tt.want {
			if !got[slot] {
				t.Errorf("frequency %d: missing slot %q", tt.frequency, slot)
			}
		}
	}
}

func TestGenerateMealItemBounds(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedCatalog(t, db)
	user := createTestUser(t, db, "bounds@example.com")
	createTestProfile(t, db, user.ID, 3, "non-veg")

	for seed := int64(0); seed < 10; seed++ {
		plan, err := newTestGenerator(db, seed).Generate(user.ID, time.Now())
		if err != nil {
			t.Fatalf("seed %d: generating plan: %v", seed, err)
		}
		for _, meal := range plan.Meals {
			if len(meal.FoodItems) < 1 || len(meal.FoodItems) > 5 {
				t.Errorf("seed %d: meal %s has %d items, want 1..5", seed, meal.Type, len(meal.FoodItems))
			}
		}
	}
}

func TestGenerateVegetarianFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedCatalog(t, db)
	user := createTestUser(t, db, "veg@example.com")
	createTestProfile(t, db, user.ID, 3, "veg")

	plan, err := newTestGenerator(db, 3).Generate(user.ID, time.Now())
	if err != nil {
		t.Fatalf("generating plan: %v", err)
	}

	for _, meal := range plan.Meals {
		for _, line := range meal.FoodItems {
			if !line.FoodItem.IsVegetarian {
				t.Errorf("vegetarian plan contains %q", line.FoodItem.Name)
			}
		}
	}
}

func TestRegenerateLeavesExactlyOnePlan(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedCatalog(t, db)
	user := createTestUser(t, db, "regen@example.com")
	createTestProfile(t, db, user.ID, 3, "non-veg")

	svc := newTestGenerator(db, 11)
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	first, err := svc.Generate(user.ID, day)
	if err != nil {
		t.Fatalf("first generation: %v", err)
	}
	second, err := svc.Generate(user.ID, day)
	if err != nil {
		t.Fatalf("second generation: %v", err)
	}
	if first.ID == second.ID {
		t.Error("expected regeneration to create a new plan")
	}

	var planCount int64
	db.Model(&models.MealPlan{}).Where("user_id = ? AND date = ?", user.ID, day).Count(&planCount)
	if planCount != 1 {
		t.Errorf("got %d plans for the day, want exactly 1", planCount)
	}

	var orphanMeals int64
	db.Model(&models.Meal{}).Where("meal_plan_id = ?", first.ID).Count(&orphanMeals)
	if orphanMeals != 0 {
		t.Errorf("old plan left %d orphan meals behind", orphanMeals)
	}
}

func TestGenerateWithoutProfileFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedCatalog(t, db)
	user := createTestUser(t, db, "noprofile@example.com")

	_, err := newTestGenerator(db, 1).Generate(user.ID, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestGenerateWithEmptyCatalogFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	// only non-vegetarian food, but a vegetarian profile
	item := models.FoodItem{Name: "Beef Stew", Calories: 235, Category: "Protein", ServingSize: 245, ServingUnit: "g"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seeding: %v", err)
	}
	user := createTestUser(t, db, "empty@example.com")
	createTestProfile(t, db, user.ID, 3, "veg")

	_, err := newTestGenerator(db, 1).Generate(user.ID, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedCatalog(t, db)
	user := createTestUser(t, db, "seed@example.com")
	createTestProfile(t, db, user.ID, 3, "non-veg")

	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	first, err := newTestGenerator(db, 99).Generate(user.ID, day)
	if err != nil {
		t.Fatalf("first generation: %v", err)
	}
	second, err := newTestGenerator(db, 99).Generate(user.ID, day)
	if err != nil {
		t.Fatalf("second generation: %v", err)
	}

	firstItems := lineItemIDs(first)
	secondItems := lineItemIDs(second)
	if len(firstItems) != len(secondItems) {
		t.Fatalf("item counts differ: %d vs %d", len(firstItems), len(secondItems))
	}
	for i := range firstItems {
		if firstItems[i] != secondItems[i] {
			t.Fatalf("selection diverged at line %d: %d vs %d", i, firstItems[i], secondItems[i])
		}
	}
}

func lineItemIDs(plan *models.MealPlan) []uint {
	var ids []uint
	for _, meal := range plan.Meals {
		for _, line := range meal.FoodItems {
			ids = append(ids, line.FoodItemID)
		}
	}
	return ids
}
