// Crawler version 2
// Dựa trên CrawlerV1 nhưng chạy song song theo khoảng kích thước và gửi dữ
// liệu vào Kafka thay vì ghi trực tiếp vào database, consumer sẽ ghi MongoDB

package crawler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/internal/classifier"
	"github.com/thep200/microservices-crawler/internal/enricher"
	githubapi "github.com/thep200/microservices-crawler/internal/github_api"
	"github.com/thep200/microservices-crawler/internal/limiter"
	"github.com/thep200/microservices-crawler/internal/model"
	"github.com/thep200/microservices-crawler/internal/partition"
	"github.com/thep200/microservices-crawler/internal/qualifier"
	"github.com/thep200/microservices-crawler/internal/tokenpool"
	kafkapkg "github.com/thep200/microservices-crawler/pkg/kafka"
	"github.com/thep200/microservices-crawler/pkg/log"
)

type CrawlerV2 struct {
	Logger     log.Logger
	Config     *cfg.Config
	Caller     SearchAPI
	Guard      *limiter.Guard
	Classifier *classifier.Classifier
	Qualifier  *qualifier.Qualifier
	Enricher   *enricher.Enricher

	// Pacing dùng chung cho mọi worker
	pacer *rate.Limiter

	// Kafka producers
	queryProducer *kafkapkg.Producer
	repoProducer  *kafkapkg.Producer

	// Worker channels
	partitionWorkers chan struct{}
	wg               sync.WaitGroup

	// Counters
	pageCount      int32
	candidateCount int32
	admittedCount  int32

	// Con trỏ khoảng kích thước dùng chung giữa các worker
	ranges    []partition.SizeRange
	rangeLock sync.Mutex
	rangeIdx  int
}

func NewCrawlerV2(logger log.Logger, config *cfg.Config) (*CrawlerV2, error) {
	pool, err := tokenpool.NewPool(config.GithubApi.AccessTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to create token pool: %w", err)
	}

	caller := githubapi.NewCaller(logger, config, pool)

	guard, err := limiter.NewGuard(logger, pool, caller, config.GithubApi.RateLimitThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit guard: %w", err)
	}

	clsf, _ := classifier.NewClassifier(logger, config)
	qlf, _ := qualifier.NewQualifier(logger, config, caller)
	enr, _ := enricher.NewEnricher(logger, config, caller)

	// Số worker chạy song song, mỗi worker xử lý trọn một khoảng kích thước
	workers := config.Crawler.PartitionWorkers
	if workers <= 0 {
		workers = 3
	}

	rps := config.GithubApi.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	// Khởi tạo Kafka producers
	queryProducer := kafkapkg.NewProducer(config, logger, config.Kafka.Producer.TopicQuery)
	repoProducer := kafkapkg.NewProducer(config, logger, config.Kafka.Producer.TopicRepo)

	return &CrawlerV2{
		Logger:           logger,
		Config:           config,
		Caller:           caller,
		Guard:            guard,
		Classifier:       clsf,
		Qualifier:        qlf,
		Enricher:         enr,
		pacer:            rate.NewLimiter(rate.Limit(rps), rps),
		queryProducer:    queryProducer,
		repoProducer:     repoProducer,
		partitionWorkers: make(chan struct{}, workers),
	}, nil
}

func (c *CrawlerV2) Crawl() bool {
	ctx := context.Background()
	startTime := time.Now()
	c.Logger.Info(ctx, "Bắt đầu crawl song song vào %s", startTime.Format(time.RFC3339))

	ranges, err := partition.Generate(c.Config.Crawler.SizeStartKb, c.Config.Crawler.SizeMaxKb, c.Config.Crawler.SizeStepKb)
	if err != nil {
		c.Logger.Error(ctx, "Miền kích thước không hợp lệ: %v", err)
		return false
	}
	c.ranges = ranges

	for {
		rng := c.getNextRange()
		if rng == nil {
			break
		}

		c.partitionWorkers <- struct{}{}
		c.wg.Add(1)
		go func(rng partition.SizeRange) {
			defer c.wg.Done()
			defer func() { <-c.partitionWorkers }()

			for _, query := range c.Config.Crawler.Queries {
				c.crawlPartition(ctx, query, rng)
			}
		}(*rng)
	}

	c.wg.Wait()

	// Close Kafka producers
	if err := c.queryProducer.Close(); err != nil {
		c.Logger.Error(ctx, "Error closing query producer: %v", err)
	}
	if err := c.repoProducer.Close(); err != nil {
		c.Logger.Error(ctx, "Error closing repo producer: %v", err)
	}

	c.logCrawlResults(ctx, startTime)
	return true
}

// getNextRange phát khoảng kích thước kế tiếp cho worker, nil khi đã hết
func (c *CrawlerV2) getNextRange() *partition.SizeRange {
	c.rangeLock.Lock()
	defer c.rangeLock.Unlock()

	if c.rangeIdx >= len(c.ranges) {
		return nil
	}
	rng := &c.ranges[c.rangeIdx]
	c.rangeIdx++
	return rng
}

// crawlPartition phân trang một cặp (truy vấn, khoảng kích thước) và gửi
// bản ghi của từng trang vào Kafka, kể cả trang rỗng
func (c *CrawlerV2) crawlPartition(ctx context.Context, query cfg.Query, rng partition.SizeRange) {
	page := 1
	hasMore := true
	for hasMore && page <= c.Config.Crawler.MaxPages {
		resp := c.searchWithRetry(ctx, query.Text, rng.String(), page)

		message := model.QueryMessage{
			Query:        query.Text,
			SizeRange:    rng.String(),
			Page:         page,
			ResultsCount: len(resp.Items),
			TotalPages:   totalPages(resp.TotalCount, c.Config.Crawler.PerPage),
		}
		if err := c.queryProducer.Publish(ctx, "query", message); err != nil {
			c.Logger.Error(ctx, "Không thể gửi query message vào Kafka: %v", err)
		}
		atomic.AddInt32(&c.pageCount, 1)

		if len(resp.Items) == 0 {
			hasMore = false
			continue
		}

		for _, item := range resp.Items {
			atomic.AddInt32(&c.candidateCount, 1)
			if c.processCandidate(ctx, query, rng, item) {
				atomic.AddInt32(&c.admittedCount, 1)
			}
		}

		page++
	}
}

// searchWithRetry giống CrawlerV1 nhưng dùng pacer dùng chung giữa các worker
func (c *CrawlerV2) searchWithRetry(ctx context.Context, query, sizeExpr string, page int) *githubapi.CodeSearchResponse {
	for attempt := 0; ; attempt++ {
		if err := c.pacer.Wait(ctx); err != nil {
			c.Logger.Warn(ctx, "Dừng chờ pacer: %v", err)
			return &githubapi.CodeSearchResponse{}
		}
		c.Guard.CheckAndRotate(ctx)

		resp, err := c.Caller.SearchCode(ctx, query, sizeExpr, page)
		if err == nil {
			return resp
		}

		if !githubapi.IsRateLimited(err) {
			c.Logger.Error(ctx, "Tìm kiếm thất bại, xem như trang rỗng: %v", err)
			return &githubapi.CodeSearchResponse{}
		}

		if attempt >= c.Config.GithubApi.MaxRetries {
			c.Logger.Error(ctx, "Vẫn bị rate limit sau %d lần thử lại, bỏ qua khoảng hiện tại", attempt)
			return &githubapi.CodeSearchResponse{}
		}

		delay := backoffDelay(time.Duration(c.Config.GithubApi.ThrottleDelay)*time.Millisecond, attempt)
		c.Logger.Warn(ctx, "🚫 Rate limit ở trang %d, chờ %v rồi thử lại", page, delay.Round(time.Millisecond))
		time.Sleep(delay)
	}
}

func (c *CrawlerV2) logCrawlResults(ctx context.Context, startTime time.Time) {
	endTime := time.Now()
	duration := endTime.Sub(startTime)

	c.Logger.Info(ctx, "==== KẾT QUẢ CRAWL V2 ====")
	c.Logger.Info(ctx, "Thời gian bắt đầu: %s", startTime.Format(time.RFC3339))
	c.Logger.Info(ctx, "Thời gian kết thúc: %s", endTime.Format(time.RFC3339))
	c.Logger.Info(ctx, "Tổng thời gian thực hiện: %v", duration)
	c.Logger.Info(ctx, "Số khoảng kích thước đã duyệt: %d", len(c.ranges))
	c.Logger.Info(ctx, "Số trang đã gửi vào Kafka: %d", atomic.LoadInt32(&c.pageCount))
	c.Logger.Info(ctx, "Số ứng viên đã xử lý: %d", atomic.LoadInt32(&c.candidateCount))
	c.Logger.Info(ctx, "Số repository đã gửi vào Kafka: %d", atomic.LoadInt32(&c.admittedCount))
}
