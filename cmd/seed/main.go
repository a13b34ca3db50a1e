package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/deechee777/lawlens/backend/internal/config"
	"github.com/deechee777/lawlens/backend/internal/database"
	"github.com/deechee777/lawlens/backend/internal/models"
	"github.com/deechee777/lawlens/backend/internal/repository"
	"github.com/deechee777/lawlens/backend/internal/seeder"
	"github.com/deechee777/lawlens/backend/pkg/utils"
)

var (
	dryRun     = flag.Bool("dry-run", false, "Don't write to the database, just print what would be seeded")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	limit      = flag.Int("limit", 0, "Limit number of entries to seed (0 = all)")
	skipVerify = flag.Bool("skip-verify", false, "Skip fetching source URLs for page titles")
	delay      = flag.Duration("delay", time.Second, "Delay between source fetches")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.Info("Starting question seeder...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	var questions models.QuestionRepository
	if !*dryRun {
		dbManager, err := database.NewManager(&database.Config{
			DatabaseURL: cfg.Database.URL,
			RedisURL:    cfg.Redis.URL,
			LogLevel:    os.Getenv("LOG_LEVEL"),
		}, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database manager")
		}
		defer dbManager.Close()

		if err := dbManager.Migrate(); err != nil {
			logger.WithError(err).Fatal("Migration failed")
		}

		questions = repository.NewRepositoryManager(dbManager.DB).Question
	}

	s := seeder.New(questions, logger, seeder.Options{
		DryRun:     *dryRun,
		SkipVerify: *skipVerify,
		Limit:      *limit,
		Delay:      *delay,
	})

	if err := s.Run(); err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}
}
