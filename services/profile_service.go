package services

import (
	"errors"
	"fmt"

	"github.com/Yasaswiniboorada/dietplanner/models"
	"github.com/Yasaswiniboorada/dietplanner/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type ProfileInput struct {
	Age               int      `json:"age" validate:"required,gte=15,lte=100"`
	Gender            string   `json:"gender" validate:"required"`
	Height            float64  `json:"height" validate:"required,gte=120,lte=250"`
	Weight            float64  `json:"weight" validate:"required,gte=30,lte=300"`
	ActivityLevel     string   `json:"activityLevel" validate:"required"`
	DietaryPreference string   `json:"dietaryPreference" validate:"required"`
	Goal              string   `json:"goal" validate:"required"`
	MealFrequency     int      `json:"mealFrequency" validate:"required,gte=1,lte=3"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage" validate:"omitempty,gte=3,lte=70"`
	ProfilePicture    string   `json:"profilePicture"`
}

type ProfileService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db, validate: validator.New()}
}

func (s *ProfileService) Get(userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: profile not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateOrUpdate upserts the caller's profile. A base64 profile picture,
// when present, is pushed to S3 and replaced by its URL.
func (s *ProfileService) CreateOrUpdate(userID uint, input ProfileInput) (*models.UserProfile, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	pictureURL := ""
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, fmt.Sprintf("user-%d", userID))
		if err != nil {
			return nil, fmt.Errorf("failed to upload profile picture: %w", err)
		}
		pictureURL = url
	}

	var profile models.UserProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{
			UserID:            userID,
			Age:               input.Age,
			Gender:            input.Gender,
			Height:            input.Height,
			Weight:            input.Weight,
			ActivityLevel:     input.ActivityLevel,
			DietaryPreference: input.DietaryPreference,
			Goal:              input.Goal,
			MealFrequency:     input.MealFrequency,
			BodyFatPercentage: input.BodyFatPercentage,
			ProfilePicture:    pictureURL,
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}

	profile.Age = input.Age
	profile.Gender = input.Gender
	profile.Height = input.Height
	profile.Weight = input.Weight
	profile.ActivityLevel = input.ActivityLevel
	profile.DietaryPreference = input.DietaryPreference
	profile.Goal = input.Goal
	profile.MealFrequency = input.MealFrequency
	profile.BodyFatPercentage = input.BodyFatPercentage
	if pictureURL != "" {
		profile.ProfilePicture = pictureURL
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Nutrition computes the caller's current targets from the stored profile.
func (s *ProfileService) Nutrition(userID uint) (*NutritionSummary, error) {
	profile, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	summary := NewNutritionService().Calculate(profile)
	return &summary, nil
}
