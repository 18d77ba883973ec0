package routes

import (
	"github.com/Yasaswiniboorada/dietplanner/controllers"
	"github.com/Yasaswiniboorada/dietplanner/middlewares"
	"github.com/Yasaswiniboorada/dietplanner/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(hub *services.EventHub) *gin.Engine {
	r := gin.Default()

	mealPlans := controllers.NewMealPlanController(hub)
	realtime := controllers.NewRealtimeController(hub)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Catalog reads are public; writes require auth.
	foods := api.Group("/food-items")
	{
		foods.GET("", controllers.ListFoodItems)
		foods.GET("/categories", controllers.ListFoodCategories)
		foods.GET("/recommendations", controllers.RecommendFoodItems)
		foods.GET("/:id", controllers.GetFoodItem)
	}
	foodsAuthed := api.Group("/food-items")
	foodsAuthed.Use(middlewares.AuthMiddleware())
	{
		foodsAuthed.POST("", controllers.CreateFoodItem)
		foodsAuthed.PUT("/:id", controllers.UpdateFoodItem)
		foodsAuthed.DELETE("/:id", controllers.DeleteFoodItem)
	}

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/profile", controllers.GetProfile)
		protected.POST("/profile", controllers.CreateOrUpdateProfile)
		protected.GET("/profile/nutrition", controllers.GetNutrition)

		protected.GET("/meal-plans/current", mealPlans.GetCurrentPlan)
		protected.POST("/meal-plans/generate", mealPlans.GeneratePlan)
		protected.POST("/meal-plans/:planId/meals/:mealId/complete", mealPlans.CompleteMeal)
		protected.GET("/meal-plans/history", mealPlans.GetPlanHistory)

		protected.POST("/progress/weight", controllers.AddWeightEntry)
		protected.GET("/progress/weight/history", controllers.GetWeightHistory)
		protected.GET("/progress/compliance/history", controllers.GetComplianceHistory)
		protected.GET("/progress/summary", controllers.GetProgressSummary)

		protected.GET("/ws", realtime.EventsWS)
	}

	return r
}
