package controllers

import (
	"net/http"
	"time"

	"github.com/Yasaswiniboorada/dietplanner/config"
	"github.com/Yasaswiniboorada/dietplanner/services"

	"github.com/gin-gonic/gin"
)

type WeightEntryInput struct {
	Date   string  `json:"date" binding:"required"`
	Weight float64 `json:"weight" binding:"required"`
	Note   string  `json:"note"`
}

func AddWeightEntry(c *gin.Context) {
	userID := c.GetUint("userID")

	var input WeightEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Please use yyyy-MM-dd format."})
		return
	}

	entry, err := services.NewComplianceService(config.DB, nil).
		AddWeightEntry(userID, date, input.Weight, input.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func GetWeightHistory(c *gin.Context) {
	userID := c.GetUint("userID")

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	entries, err := services.NewComplianceService(config.DB, nil).WeightHistory(userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func GetComplianceHistory(c *gin.Context) {
	userID := c.GetUint("userID")

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	entries, err := services.NewComplianceService(config.DB, nil).ComplianceHistory(userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func GetProgressSummary(c *gin.Context) {
	userID := c.GetUint("userID")

	start, err := time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Please use yyyy-MM-dd format."})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Please use yyyy-MM-dd format."})
		return
	}

	summary, err := services.NewComplianceService(config.DB, nil).Summary(userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
