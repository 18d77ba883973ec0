package main

import (
	"log"
	"os"

	"github.com/Yasaswiniboorada/dietplanner/config"
	"github.com/Yasaswiniboorada/dietplanner/routes"
	"github.com/Yasaswiniboorada/dietplanner/services"
	"github.com/Yasaswiniboorada/dietplanner/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	if err := services.NewFoodService(config.DB).SeedFromFile("data/food_items.json"); err != nil {
		log.Printf("Food catalog seeding skipped: %v", err)
	}

	hub := services.NewEventHub()
	r := routes.SetupRouter(hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
