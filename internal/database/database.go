package database

import (
	"fmt"

	"govforms/internal/config"
	logging "govforms/internal/logging"
	"govforms/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	// Create our custom GORM logger
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Warn

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Interview{},
		&models.InterviewAnswer{},
		&models.Form{},
		&models.SheetConnection{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	answersIndex := `CREATE INDEX IF NOT EXISTS idx_interview_answers_lookup ON interview_answers (interview_id, question_id, updated_at DESC);`
	if err := DB.Exec(answersIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on interview answers", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
