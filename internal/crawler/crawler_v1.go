// Crawler version 1
// Phiên bản tuần tự: duyệt lần lượt từng khoảng kích thước, từng truy vấn,
// từng trang kết quả và ghi trực tiếp vào MongoDB

package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/internal/classifier"
	"github.com/thep200/microservices-crawler/internal/enricher"
	githubapi "github.com/thep200/microservices-crawler/internal/github_api"
	"github.com/thep200/microservices-crawler/internal/limiter"
	"github.com/thep200/microservices-crawler/internal/model"
	"github.com/thep200/microservices-crawler/internal/partition"
	"github.com/thep200/microservices-crawler/internal/qualifier"
	"github.com/thep200/microservices-crawler/internal/tokenpool"
	"github.com/thep200/microservices-crawler/pkg/db"
	"github.com/thep200/microservices-crawler/pkg/log"
)

type CrawlerV1 struct {
	Logger      log.Logger
	Config      *cfg.Config
	Mongo       *db.Mongo
	Caller      SearchAPI
	Guard       *limiter.Guard
	Classifier  *classifier.Classifier
	Qualifier   *qualifier.Qualifier
	Enricher    *enricher.Enricher
	QueryMd     QueryStore
	RepoMd      RepoStore
	rateLimiter *limiter.RateLimiter
}

func NewCrawlerV1(logger log.Logger, config *cfg.Config, mongo *db.Mongo) (*CrawlerV1, error) {
	pool, err := tokenpool.NewPool(config.GithubApi.AccessTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to create token pool: %w", err)
	}

	caller := githubapi.NewCaller(logger, config, pool)

	guard, err := limiter.NewGuard(logger, pool, caller, config.GithubApi.RateLimitThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit guard: %w", err)
	}

	clsf, err := classifier.NewClassifier(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}

	qlf, err := qualifier.NewQualifier(logger, config, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to create qualifier: %w", err)
	}

	enr, err := enricher.NewEnricher(logger, config, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to create enricher: %w", err)
	}

	queryMd, err := model.NewPerformedQuery(config, logger, mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to create performed query model: %w", err)
	}

	repoMd, err := model.NewAdmittedRepo(config, logger, mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to create admitted repo model: %w", err)
	}

	rps := config.GithubApi.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &CrawlerV1{
		Logger:      logger,
		Config:      config,
		Mongo:       mongo,
		Caller:      caller,
		Guard:       guard,
		Classifier:  clsf,
		Qualifier:   qlf,
		Enricher:    enr,
		QueryMd:     queryMd,
		RepoMd:      repoMd,
		rateLimiter: limiter.NewRateLimiter(rps),
	}, nil
}

func (c *CrawlerV1) Crawl() bool {
	ctx := context.Background()
	startTime := time.Now()
	c.Logger.Info(ctx, "Bắt đầu crawl repository microservices vào %s", startTime.Format(time.RFC3339))

	ranges, err := partition.Generate(c.Config.Crawler.SizeStartKb, c.Config.Crawler.SizeMaxKb, c.Config.Crawler.SizeStepKb)
	if err != nil {
		c.Logger.Error(ctx, "Miền kích thước không hợp lệ: %v", err)
		return false
	}

	totalPagesCrawled := 0
	totalCandidates := 0
	totalAdmitted := 0

	// Thứ tự duyệt cố định: khoảng kích thước tăng dần,
	// truy vấn theo thứ tự khai báo trong cấu hình
	for _, rng := range ranges {
		for _, query := range c.Config.Crawler.Queries {
			pages, candidates, admitted := c.crawlPartition(ctx, query, rng)
			totalPagesCrawled += pages
			totalCandidates += candidates
			totalAdmitted += admitted
		}
	}

	endTime := time.Now()
	c.Logger.Info(ctx, "==== KẾT QUẢ CRAWL ====")
	c.Logger.Info(ctx, "Thời gian bắt đầu: %s", startTime.Format(time.RFC3339))
	c.Logger.Info(ctx, "Thời gian kết thúc: %s", endTime.Format(time.RFC3339))
	c.Logger.Info(ctx, "Tổng thời gian thực hiện: %v", endTime.Sub(startTime))
	c.Logger.Info(ctx, "Số khoảng kích thước đã duyệt: %d", len(ranges))
	c.Logger.Info(ctx, "Số trang đã truy vấn: %d", totalPagesCrawled)
	c.Logger.Info(ctx, "Số ứng viên đã xử lý: %d", totalCandidates)
	c.Logger.Info(ctx, "Số repository được ghi nhận: %d", totalAdmitted)

	return true
}

// crawlPartition phân trang một cặp (truy vấn, khoảng kích thước).
// Mỗi trang đã gọi tạo đúng một bản ghi PerformedQuery, kể cả trang rỗng,
// trang rỗng kết thúc khoảng hiện tại.
func (c *CrawlerV1) crawlPartition(ctx context.Context, query cfg.Query, rng partition.SizeRange) (int, int, int) {
	pages := 0
	candidates := 0
	admitted := 0

	page := 1
	hasMore := true
	for hasMore && page <= c.Config.Crawler.MaxPages {
		resp := c.searchWithRetry(ctx, query.Text, rng.String(), page)

		if err := c.QueryMd.Create(ctx, query.Text, rng.String(), page, len(resp.Items), totalPages(resp.TotalCount, c.Config.Crawler.PerPage)); err != nil {
			c.Logger.Error(ctx, "Không thể lưu performed query: %v", err)
		}
		pages++

		if len(resp.Items) == 0 {
			hasMore = false
			continue
		}

		for _, item := range resp.Items {
			candidates++
			if c.processCandidate(ctx, query, rng, item) {
				admitted++
			}
		}

		page++
	}

	return pages, candidates, admitted
}

// searchWithRetry gọi search API với số lần thử lại có giới hạn khi gặp rate
// limit, trước mỗi lần thử guard kiểm tra quota và xoay vòng token nếu cần.
// Hết lượt thử hoặc gặp lỗi khác rate limit thì trả về trang rỗng để vòng
// phân trang kết thúc khoảng hiện tại.
func (c *CrawlerV1) searchWithRetry(ctx context.Context, query, sizeExpr string, page int) *githubapi.CodeSearchResponse {
	for attempt := 0; ; attempt++ {
		c.applyRateLimit(ctx)
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

// applyRateLimit chờ rate limiter phía client cho phép request mới
func (c *CrawlerV1) applyRateLimit(ctx context.Context) {
	delay := time.Duration(c.Config.GithubApi.ThrottleDelay) * time.Millisecond
	if err := c.rateLimiter.Wait(ctx, delay); err != nil {
		c.Logger.Warn(ctx, "Dừng chờ rate limiter: %v", err)
	}
}
