package main

import (
	"log"
	"os"

	"vocabmaster/internal/cli"
	"vocabmaster/internal/config"
	"vocabmaster/internal/database"
	"vocabmaster/internal/repository"
	"vocabmaster/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	wordRepo := repository.NewWordRepository(db)
	wordService := service.NewWordService(wordRepo, cfg.MaxWords)

	app := cli.New(wordService, os.Stdin, os.Stdout)
	if err := app.Run(); err != nil {
		log.Fatalf("Terminal session failed: %v", err)
	}
}
