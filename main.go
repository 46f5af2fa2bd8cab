package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"sharehub_backend/internals/configs"
	database "sharehub_backend/internals/databases"
	tokenService "sharehub_backend/internals/features/tokens/service"
	helper "sharehub_backend/internals/helpers"
	osshelper "sharehub_backend/internals/helpers/oss"
	"sharehub_backend/internals/middlewares"
	"sharehub_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	db := database.DB

	oss, err := osshelper.NewOSSServiceFromEnv("sharehub")
	if err != nil {
		log.Fatalf("[ERROR] OSS init failed: %v", err)
	}

	recorder := tokenService.NewUsageRecorder(db, 1024)
	recorder.Start()

	app := fiber.New(fiber.Config{
		AppName:      "ShareHub Backend",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: helper.JsonAppError,
		BodyLimit:    110 * 1024 * 1024, // slide limit plus multipart overhead
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 5 * time.Minute, // archive downloads can be slow
		IdleTimeout:  time.Minute,
	})

	app.Use(requestid.New())
	middlewares.SetupMiddlewares(app)
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(etag.New())

	route.SetupRoutes(app, db, oss, recorder)

	port := configs.GetEnv("PORT", "8080")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("[ERROR] server stopped: %v", err)
		}
	}()
	log.Printf("[INFO] listening on :%s", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[INFO] shutting down...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Printf("[ERROR] shutdown: %v", err)
	}
	// drain pending usage samples before the DB handle goes away
	recorder.Stop()
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("[INFO] bye")
}
