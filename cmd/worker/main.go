// main.go
//
// Offline-first local data and sync worker for the FieldScope inspection app
// Copyright (c) 2026 FieldScope Software
//
// This file is part of inspection-worker.
// inspection-worker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// inspection-worker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with inspection-worker.
// If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/fieldscope/inspection-worker/internal/config"
	"github.com/fieldscope/inspection-worker/internal/database"
	"github.com/fieldscope/inspection-worker/internal/handlers"
	"github.com/fieldscope/inspection-worker/internal/middleware"
	"github.com/fieldscope/inspection-worker/internal/remote"
	"github.com/fieldscope/inspection-worker/internal/syncer"
	"github.com/fieldscope/inspection-worker/internal/types"

	_ "github.com/fieldscope/inspection-worker/docs/api" // Swagger docs
)

// @title Inspection Worker API
// @version 1.0.0
// @description Local-first data and sync worker for the FieldScope inspection app
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/fieldscope/inspection-worker
// @contact.email support@fieldscope.dev

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /client
// @schemes http

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the local store
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	client := remote.New(cfg, db)
	sync := syncer.New(cfg, db, client)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("inspection-worker")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Intercepted routes under /client
	local := app.Group("/client")
	local.Use(middleware.VersionMiddleware())

	// Create handlers
	seedHandler := &handlers.SeedHandler{DB: db}
	jobsHandler := &handlers.JobsHandler{DB: db}
	itemsHandler := &handlers.ReportItemsHandler{DB: db}
	libraryHandler := &handlers.LibraryHandler{DB: db}
	reportHandler := &handlers.PreviousReportHandler{DB: db}
	syncHandler := &handlers.SyncHandler{Syncer: sync}

	// Seed routes, fired once after login
	local.Post("/init-user", seedHandler.InitUser)
	local.Post("/init-notes", seedHandler.InitNotes)
	local.Post("/init-items", seedHandler.InitItems)
	local.Post("/init-categories", seedHandler.InitCategories)
	local.Post("/init-recommendations", seedHandler.InitRecommendations)
	local.Post("/init-jobs", seedHandler.InitJobs)

	// Job routes
	local.Get("/jobs", jobsHandler.GetJobs)
	local.Put("/jobs", jobsHandler.UpdateJob)
	local.Post("/jobs/notes", jobsHandler.AddNote)
	local.Put("/jobs/notes", jobsHandler.DeleteNote)

	// Report item routes
	local.Post("/jobs/report-items", itemsHandler.AddItem)
	local.Get("/jobs/report-items", itemsHandler.GetItems)
	local.Delete("/jobs/report-items", itemsHandler.DeleteItem)
	local.Get("/previous-items", itemsHandler.GetPreviousItems)
	local.Get("/previous-item-id", itemsHandler.GetPreviousItemRefs)

	// Library routes
	local.Get("/notes", libraryHandler.GetNotes)
	local.Get("/categories", libraryHandler.GetCategories)
	local.Get("/recommendations", libraryHandler.GetRecommendations)
	local.Post("/recommendations", jobsHandler.SetRecommendation)
	local.Delete("/recommendations", jobsHandler.ClearRecommendation)
	local.Get("/items-index", libraryHandler.GetItemsIndex)
	local.Get("/items-library", libraryHandler.GetItemsLibrary)

	// Previous report cache
	local.Get("/previous-report", reportHandler.GetReport)
	local.Post("/previous-report", reportHandler.SetReport)

	// Sync routes
	local.Get("/sync-jobs", syncHandler.SyncJobs)
	local.Get("/sync-items", syncHandler.SyncItems)
	local.Get("/non-synced-items", itemsHandler.GetNonSynced)
	local.Put("/non-synced-items", itemsHandler.ConfirmSynced)

	// Everything else falls through to the origin or the app shell
	app.Use(middleware.Passthrough(cfg))

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting worker on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}

	log.Println("Worker stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusBadRequest
	message := err.Error()

	var fiberErr *fiber.Error
	var customErr *types.CustomError
	switch {
	case errors.As(err, &customErr):
		code = customErr.Code
		message = customErr.Message
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"message": message,
	})
}
