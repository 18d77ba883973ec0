package controllers

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/Yasaswiniboorada/dietplanner/config"
	"github.com/Yasaswiniboorada/dietplanner/services"

	"github.com/gin-gonic/gin"
)

type MealPlanController struct {
	compliance *services.ComplianceService
}

func NewMealPlanController(hub *services.EventHub) *MealPlanController {
	return &MealPlanController{
		compliance: services.NewComplianceService(config.DB, hub),
	}
}

// planService builds a per-request service: rand.Rand is not safe for
// concurrent use, so request goroutines must not share one source.
func (mc *MealPlanController) planService() *services.MealPlanService {
	return services.NewMealPlanService(config.DB, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func (mc *MealPlanController) GetCurrentPlan(c *gin.Context) {
	userID := c.GetUint("userID")

	plan, err := mc.planService().Current(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (mc *MealPlanController) GeneratePlan(c *gin.Context) {
	userID := c.GetUint("userID")

	plan, err := mc.planService().Generate(userID, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (mc *MealPlanController) CompleteMeal(c *gin.Context) {
	userID := c.GetUint("userID")

	planID, err := parseID(c, "planId")
	if err != nil {
		return
	}
	mealID, err := parseID(c, "mealId")
	if err != nil {
		return
	}

	if err := mc.compliance.CompleteMeal(userID, planID, mealID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal marked as completed"})
}

func (mc *MealPlanController) GetPlanHistory(c *gin.Context) {
	userID := c.GetUint("userID")

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	plans, err := mc.planService().History(userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// parseDateRange reads optional startDate/endDate query params in
// yyyy-MM-dd form. ok is false when it already answered with a 400.
func parseDateRange(c *gin.Context) (from, to *time.Time, ok bool) {
	if raw := c.Query("startDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Please use yyyy-MM-dd format."})
			return nil, nil, false
		}
		from = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Please use yyyy-MM-dd format."})
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}
