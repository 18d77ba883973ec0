package controllers

import (
	"net/http"

	"github.com/Yasaswiniboorada/dietplanner/config"
	"github.com/Yasaswiniboorada/dietplanner/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	profile, err := services.NewProfileService(config.DB).Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func CreateOrUpdateProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := services.NewProfileService(config.DB).CreateOrUpdate(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func GetNutrition(c *gin.Context) {
	userID := c.GetUint("userID")

	summary, err := services.NewProfileService(config.DB).Nutrition(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
