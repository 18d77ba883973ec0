package controllers

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/Yasaswiniboorada/dietplanner/config"
	"github.com/Yasaswiniboorada/dietplanner/services"

	"github.com/gin-gonic/gin"
)

func parseFoodFilter(c *gin.Context) (services.FoodFilter, bool) {
	filter := services.FoodFilter{Category: c.Query("category")}
	if raw := c.Query("isVegetarian"); raw != "" {
		veg, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "isVegetarian must be a boolean"})
			return filter, false
		}
		filter.IsVegetarian = &veg
	}
	return filter, true
}

func ListFoodItems(c *gin.Context) {
	filter, ok := parseFoodFilter(c)
	if !ok {
		return
	}

	items, err := services.NewFoodService(config.DB).List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func GetFoodItem(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}

	item, err := services.NewFoodService(config.DB).Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func ListFoodCategories(c *gin.Context) {
	categories, err := services.NewFoodService(config.DB).Categories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func RecommendFoodItems(c *gin.Context) {
	filter, ok := parseFoodFilter(c)
	if !ok {
		return
	}

	count := 3
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
			return
		}
		count = n
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	items, err := services.NewFoodService(config.DB).Recommend(filter, count, rng)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func CreateFoodItem(c *gin.Context) {
	var input services.FoodItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := services.NewFoodService(config.DB).Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func UpdateFoodItem(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}

	var input services.FoodItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := services.NewFoodService(config.DB).Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func DeleteFoodItem(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := services.NewFoodService(config.DB).Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID pulls a uint path param, answering 400 itself on garbage.
func parseID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, err
	}
	return uint(id), nil
}
