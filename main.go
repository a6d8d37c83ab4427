package main

import (
	"context"

	"govforms/internal/config"
	"govforms/internal/database"
	logger "govforms/internal/logging"
	"govforms/internal/models"
	"govforms/internal/repository"
	"govforms/internal/router"
	"govforms/internal/services"

	"go.uber.org/zap"
)

func main() {
	// Initialize Logger
	log, err := logger.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Database
	database.Init(log)

	// Seed interview questions at startup if the table is empty
	seedQuestions(log)

	// Background sheet synchronization
	sheetsClient := services.NewSheetsClient(log)
	syncer := services.NewSheetSyncer(log, sheetsClient)
	scheduler := services.NewScheduler(log, syncer)
	scheduler.Start()

	// Setup router, passing the logger to it
	r := router.Setup(log, syncer)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}

func seedQuestions(log *zap.Logger) {
	path := config.Conf.Server.QuestionsFile
	questions, err := models.LoadQuestionFile(path)
	if err != nil {
		log.Warn("No question seed file loaded", zap.String("path", path), zap.Error(err))
		return
	}

	seeded, err := repository.SeedQuestions(context.Background(), questions)
	if err != nil {
		log.Fatal("Failed to seed questions", zap.Error(err))
	}
	if seeded > 0 {
		log.Info("Seeded interview questions", zap.Int("count", seeded))
	}
}
