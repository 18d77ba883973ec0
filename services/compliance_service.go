package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Yasaswiniboorada/dietplanner/models"

	"gorm.io/gorm"
)

// ComplianceService owns the meal completion state machine and the
// weight/compliance progress history.
type ComplianceService struct {
	db  *gorm.DB
	hub *EventHub
}

// NewComplianceService takes an optional hub; pass nil when no realtime
// fan-out is wanted (tests do).
func NewComplianceService(db *gorm.DB, hub *EventHub) *ComplianceService {
	return &ComplianceService{db: db, hub: hub}
}

// CompleteMeal marks one meal done. When that completes the whole plan it
// also flips the plan flag and writes the plan's single ComplianceEntry.
// The read-evaluate-insert sequence runs in one transaction, and the entry
// insert is guarded by an existence check, so racing or replayed calls
// cannot double-insert.
func (s *ComplianceService) CompleteMeal(userID, planID, mealID uint) error {
	planCompleted := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var meal models.Meal
		err := tx.Where("id = ? AND meal_plan_id = ?", mealID, planID).First(&meal).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: meal not found", ErrNotFound)
		}
		if err != nil {
			return err
		}

		var plan models.MealPlan
		if err := tx.First(&plan, planID).Error; err != nil {
			return err
		}
		if plan.UserID != userID {
			return fmt.Errorf("%w: meal belongs to another user", ErrForbidden)
		}

		if !meal.Completed {
			if err := tx.Model(&meal).Update("completed", true).Error; err != nil {
				return err
			}
		}

		var meals []models.Meal
		if err := tx.Where("meal_plan_id = ?", planID).Find(&meals).Error; err != nil {
			return err
		}
		for _, m := range meals {
			if !m.Completed {
				return nil
			}
		}

		if err := tx.Model(&plan).Update("completed", true).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.ComplianceEntry{}).
			Where("meal_plan_id = ?", planID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		planCompleted = true
		entry := models.ComplianceEntry{
			UserID:         userID,
			MealPlanID:     planID,
			Date:           dateOnly(time.Now().UTC()),
			MealsCompleted: len(meals),
			TotalMeals:     len(meals),
			ComplianceRate: 1.0,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Broadcast(userID, Event{Type: "meal_completed", MealPlanID: planID, MealID: mealID})
		if planCompleted {
			s.hub.Broadcast(userID, Event{Type: "plan_completed", MealPlanID: planID})
		}
	}
	return nil
}

func (s *ComplianceService) AddWeightEntry(userID uint, date time.Time, weight float64, note string) (*models.WeightEntry, error) {
	if weight < 30 || weight > 300 {
		return nil, fmt.Errorf("%w: weight must be between 30 and 300 kg", ErrValidation)
	}

	entry := models.WeightEntry{
		UserID: userID,
		Date:   dateOnly(date),
		Weight: weight,
		Note:   note,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *ComplianceService) WeightHistory(userID uint, from, to *time.Time) ([]models.WeightEntry, error) {
	q := s.db.Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("date >= ?", dateOnly(*from))
	}
	if to != nil {
		q = q.Where("date <= ?", dateOnly(*to))
	}

	var entries []models.WeightEntry
	err := q.Order("date ASC").Find(&entries).Error
	return entries, err
}

func (s *ComplianceService) ComplianceHistory(userID uint, from, to *time.Time) ([]models.ComplianceEntry, error) {
	q := s.db.Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("date >= ?", dateOnly(*from))
	}
	if to != nil {
		q = q.Where("date <= ?", dateOnly(*to))
	}

	var entries []models.ComplianceEntry
	err := q.Order("date ASC").Find(&entries).Error
	return entries, err
}

type ProgressSummary struct {
	StartDate             time.Time `json:"startDate"`
	EndDate               time.Time `json:"endDate"`
	StartWeight           float64   `json:"startWeight"`
	CurrentWeight         float64   `json:"currentWeight"`
	WeightChange          float64   `json:"weightChange"`
	AverageComplianceRate float64   `json:"averageComplianceRate"`
}

// Summary aggregates the range: weight change is last minus first by date,
// average compliance is the plain mean (0 when no entries exist).
func (s *ComplianceService) Summary(userID uint, start, end time.Time) (*ProgressSummary, error) {
	weights, err := s.WeightHistory(userID, &start, &end)
	if err != nil {
		return nil, err
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no weight entries found for the specified period", ErrNotFound)
	}

	compliance, err := s.ComplianceHistory(userID, &start, &end)
	if err != nil {
		return nil, err
	}

	avg := 0.0
	if len(compliance) > 0 {
		for _, c := range compliance {
			avg += c.ComplianceRate
		}
		avg /= float64(len(compliance))
	}

	first := weights[0].Weight
	last := weights[len(weights)-1].Weight

	return &ProgressSummary{
		StartDate:             dateOnly(start),
		EndDate:               dateOnly(end),
		StartWeight:           first,
		CurrentWeight:         last,
		WeightChange:          last - first,
		AverageComplianceRate: avg,
	}, nil
}
