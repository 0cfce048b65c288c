package main

import (
	"context"
	"fmt"
	"os"

	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/internal/crawler"
	"github.com/thep200/microservices-crawler/pkg/db"
	"github.com/thep200/microservices-crawler/pkg/log"
)

type Handler struct {
	Crawler crawler.Crawler
	Logger  log.Logger
}

func NewHandler(crawler crawler.Crawler, logger log.Logger) *Handler {
	return &Handler{
		Crawler: crawler,
		Logger:  logger,
	}
}

func main() {
	ctx := context.Background()
	// loader, _ := cfg.NewMockLoader()
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, _ := log.NewCslLogger()
	mongo, _ := db.NewMongo(config)

	// Fail fast khi MongoDB không sẵn sàng
	if err := mongo.Ping(); err != nil {
		logger.Error(ctx, "Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}

	crawler, err := crawler.FactoryCrawler(config.App.CrawlerVersion, logger, config, mongo)
	if err != nil {
		logger.Error(ctx, "Failed to create crawler: %v", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Starting microservices repository crawler (%s)", config.App.CrawlerVersion)
	handler := NewHandler(crawler, logger)
	if handler.Crawler.Crawl() {
		logger.Info(ctx, "Successfully!")
	} else {
		logger.Error(ctx, "Failed!")
	}
}
