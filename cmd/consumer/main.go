package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/internal/model"
	"github.com/thep200/microservices-crawler/pkg/db"
	"github.com/thep200/microservices-crawler/pkg/kafka"
	"github.com/thep200/microservices-crawler/pkg/log"
)

func main() {
	// Parse command line arguments
	consumerType := flag.String("type", "", "Type of consumer to run (query, repo)")
	flag.Parse()

	if *consumerType == "" {
		fmt.Println("Please specify a consumer type: -type=[query|repo]")
		os.Exit(1)
	}

	// Load configuration
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, _ := log.NewCslLogger()

	// Setup database
	mongo, _ := db.NewMongo(config)
	if err := mongo.Ping(); err != nil {
		logger.Error(context.Background(), "Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create models
	queryModel, _ := model.NewPerformedQuery(config, logger, mongo)
	repoModel, _ := model.NewAdmittedRepo(config, logger, mongo)

	// Setup signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start the appropriate consumer based on type
	switch *consumerType {
	case "query":
		startQueryConsumer(ctx, config, logger, queryModel)
	case "repo":
		startRepoConsumer(ctx, config, logger, repoModel)
	default:
		logger.Error(ctx, "Unknown consumer type: %s", *consumerType)
		os.Exit(1)
	}

	// Wait for termination signal
	<-sigCh
	logger.Info(ctx, "Received shutdown signal, gracefully shutting down...")
	cancel()
}

func startQueryConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, queryModel *model.PerformedQuery) {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.Producer.TopicQuery, "query-consumer-group")

	// Register handler for performed query messages
	consumer.RegisterHandler("query", func(data []byte) error {
		var queryMsg model.QueryMessage
		if err := json.Unmarshal(data, &queryMsg); err != nil {
			return fmt.Errorf("failed to unmarshal query message: %w", err)
		}

		// Save performed query to database
		if err := queryModel.Create(ctx, queryMsg.Query, queryMsg.SizeRange, queryMsg.Page, queryMsg.ResultsCount, queryMsg.TotalPages); err != nil {
			return fmt.Errorf("failed to save performed query to database: %w", err)
		}

		return nil
	})

	// Start consumer in a goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Query consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Performed query consumer started successfully")
}

func startRepoConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, repoModel *model.AdmittedRepo) {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.Producer.TopicRepo, "repo-consumer-group")

	// Channel for collecting messages in batches
	batchSize := 100
	batchTimeout := 5 * time.Second

	// Channel to collect messages for batch processing
	messages := make(chan model.AdmittedRepoMessage, batchSize*2)

	// Batch processor
	go processBatchedRepos(ctx, messages, batchSize, batchTimeout, logger, repoModel)

	// Register handler for repo messages
	consumer.RegisterHandler("repo", func(data []byte) error {
		var repoMsg model.AdmittedRepoMessage
		if err := json.Unmarshal(data, &repoMsg); err != nil {
			return fmt.Errorf("failed to unmarshal repo message: %w", err)
		}

		// Send to batch channel instead of processing individually
		select {
		case messages <- repoMsg:
			// Message added to batch
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	})

	// Start consumer in a goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Repo consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Repository consumer started successfully")
}

// processBatchedRepos gom message thành batch theo kích thước hoặc timeout
func processBatchedRepos(ctx context.Context, messages <-chan model.AdmittedRepoMessage, batchSize int,
	batchTimeout time.Duration, logger log.Logger, repoModel *model.AdmittedRepo) {

	var batch []model.AdmittedRepoMessage
	timer := time.NewTimer(batchTimeout)

	for {
		select {
		case <-ctx.Done():
			// Process remaining messages before exiting
			if len(batch) > 0 {
				processSingleBatch(ctx, batch, logger, repoModel)
			}
			return

		case msg := <-messages:
			batch = append(batch, msg)

			// Process batch when it reaches the desired size
			if len(batch) >= batchSize {
				processSingleBatch(ctx, batch, logger, repoModel)
				batch = nil
				timer.Reset(batchTimeout)
			}

		case <-timer.C:
			// Process batch on timeout if there are any messages
			if len(batch) > 0 {
				processSingleBatch(ctx, batch, logger, repoModel)
				batch = nil
			}
			timer.Reset(batchTimeout)
		}
	}
}

// processSingleBatch ghi một batch repository vào MongoDB
func processSingleBatch(ctx context.Context, batch []model.AdmittedRepoMessage, logger log.Logger, repoModel *model.AdmittedRepo) {
	if len(batch) == 0 {
		return
	}

	logger.Info(ctx, "Processing batch of %d repositories", len(batch))

	if err := repoModel.CreateBatch(ctx, batch); err != nil {
		logger.Error(ctx, "Failed to save batch of repositories: %v", err)
	} else {
		logger.Info(ctx, "Successfully saved batch of %d repositories", len(batch))
	}
}
