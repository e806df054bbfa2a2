package main

import (
	"log"

	"pod_dining/config"
	"pod_dining/database"
	"pod_dining/handler"
	"pod_dining/helper"
	"pod_dining/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		AppName: "pod_dining",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigDefault("FRONTEND_URL", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	database.ConnectRedis()

	helper.Orders = helper.NewOrderClient()

	helper.StartGroupExpiryScheduler()
	defer helper.StopGroupExpiryScheduler()
	helper.StartSeatMaintenanceScheduler()
	defer helper.StopSeatMaintenanceScheduler()
	handler.StartPodMapSubscriber()

	router.SetupRoutes(app)

	log.Fatal(app.Listen(":" + config.ConfigDefault("PORT", "8002")))
}
