package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/internal/model"
	"github.com/thep200/microservices-crawler/pkg/db"
	"github.com/thep200/microservices-crawler/pkg/log"
)

func main() {
	out := flag.String("out", "admitted_repositories.csv", "Path of the CSV file to write")
	flag.Parse()

	// Load configuration
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, _ := log.NewCslLogger()
	ctx := context.Background()

	mongo, _ := db.NewMongo(config)
	if err := mongo.Ping(); err != nil {
		logger.Error(ctx, "Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}

	repoModel, _ := model.NewAdmittedRepo(config, logger, mongo)
	repos, err := repoModel.FindAll(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to load admitted repositories: %v", err)
		os.Exit(1)
	}

	file, err := os.Create(*out)
	if err != nil {
		logger.Error(ctx, "Failed to create %s: %v", *out, err)
		os.Exit(1)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"url", "file_type", "file_path", "size_range", "stars", "commits", "contributors", "created_at", "updated_at", "timestamp"}
	if err := writer.Write(header); err != nil {
		logger.Error(ctx, "Failed to write CSV header: %v", err)
		os.Exit(1)
	}

	for _, repo := range repos {
		record := []string{
			repo.Url,
			repo.FileType,
			repo.FilePath,
			repo.SizeRange,
			strconv.Itoa(repo.Metadata.Stars),
			repo.Metadata.Commits,
			repo.Metadata.Contributors,
			repo.Metadata.CreatedAt,
			repo.Metadata.UpdatedAt,
			repo.Timestamp.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			logger.Error(ctx, "Failed to write CSV record: %v", err)
			os.Exit(1)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		logger.Error(ctx, "Failed to flush CSV: %v", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Exported %d repositories to %s", len(repos), *out)
}
