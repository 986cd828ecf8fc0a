package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/workerbuddy/workerbuddy-api/cron"
	"github.com/workerbuddy/workerbuddy-api/db"
	"github.com/workerbuddy/workerbuddy-api/redis"
	"github.com/workerbuddy/workerbuddy-api/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	conn, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	redis.InitRedis()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("WorkerBuddy API")
	})

	routes.SetupAuthRoutes(app, conn)
	routes.SetupCustomerRoutes(app, conn)
	routes.SetupWorkerRoutes(app, conn)

	cron.StartCronJobs(conn)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
