// Gói githubapi cung cấp một caller cho GitHub API.
// Caller chịu trách nhiệm thực hiện yêu cầu HTTP, xác thực bằng token hiện tại
// của pool và ánh xạ các phản hồi lỗi (rate limit, 404) thành lỗi có kiểu.
// Các endpoint được cấu hình qua file cấu hình để có thể trỏ về server giả lập.

package githubapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/internal/limiter"
	"github.com/thep200/microservices-crawler/internal/tokenpool"
	"github.com/thep200/microservices-crawler/pkg/log"
)

// linkRegex tách các cặp <url>; rel="..." trong header Link của GitHub
var linkRegex = regexp.MustCompile(`<([^>]+)>;\s*rel="([^"]+)"`)

type Caller struct {
	Logger log.Logger
	Config *cfg.Config
	Pool   *tokenpool.Pool
	client *http.Client
}

func NewCaller(logger log.Logger, config *cfg.Config, pool *tokenpool.Pool) *Caller {
	return &Caller{
		Logger: logger,
		Config: config,
		Pool:   pool,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doGet thực hiện GET với token cho trước, trả về response còn mở body.
// Lỗi rate limit và 404 được ánh xạ thành lỗi có kiểu, body được đóng khi lỗi.
func (c *Caller) doGet(ctx context.Context, fullUrl string, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s", token))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot send request: %w", err)
	}

	if err := checkResponse(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp, nil
}

// checkResponse ánh xạ status code thành lỗi có kiểu
func checkResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", resp.Request.URL.Path, ErrNotFound)
	}

	rateRemaining := resp.Header.Get("X-RateLimit-Remaining")
	retryAfter := resp.Header.Get("Retry-After")
	isForbidden := resp.StatusCode == http.StatusForbidden && (rateRemaining == "0" || retryAfter != "")
	if resp.StatusCode == http.StatusTooManyRequests || isForbidden {
		rle := &RateLimitError{StatusCode: resp.StatusCode}
		if resetStr := resp.Header.Get("X-RateLimit-Reset"); resetStr != "" {
			if resetInt, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
				rle.ResetAt = time.Unix(resetInt, 0)
			}
		}
		return rle
	}

	return fmt.Errorf("cannot received response: %v", resp.Status)
}

// SearchCode gọi code search API với truy vấn đã ghép qualifier size.
// Trả về trang kết quả cùng tổng số kết quả khớp truy vấn.
func (c *Caller) SearchCode(ctx context.Context, query, sizeExpr string, page int) (*CodeSearchResponse, error) {
	perPage := c.Config.Crawler.PerPage

	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s size:%s", query, sizeExpr))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	fullUrl := fmt.Sprintf("%s?%s", c.Config.GithubApi.SearchApiUrl, params.Encode())

	c.Logger.Info(ctx, "Calling GitHub code search: q=%q size=%s page=%d", query, sizeExpr, page)

	resp, err := c.doGet(ctx, fullUrl, c.Pool.Current().Token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rawResponse := &CodeSearchResponse{}
	if err := json.NewDecoder(resp.Body).Decode(rawResponse); err != nil {
		return nil, fmt.Errorf("cannot decode search response: %w", err)
	}

	c.Logger.Info(ctx, "Total files found: %d, page: %d, items received: %d",
		rawResponse.TotalCount, page, len(rawResponse.Items))

	if page*perPage >= 1000 {
		c.Logger.Warn(ctx, "GitHub API only provides access to the first 1,000 search results")
	}

	return rawResponse, nil
}

// GetFileContent tải nội dung một file qua contents API và giải mã base64
func (c *Caller) GetFileContent(ctx context.Context, user, repo, path string) (string, error) {
	contentsUrl := strings.ReplaceAll(c.Config.GithubApi.ContentsApiUrl, "{user}", user)
	contentsUrl = strings.ReplaceAll(contentsUrl, "{repo}", repo)
	contentsUrl = strings.ReplaceAll(contentsUrl, "{path}", path)

	resp, err := c.doGet(ctx, contentsUrl, c.Pool.Current().Token)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	fileContent := &FileContentResponse{}
	if err := json.NewDecoder(resp.Body).Decode(fileContent); err != nil {
		return "", fmt.Errorf("cannot decode file content response: %w", err)
	}

	if fileContent.Encoding != "" && fileContent.Encoding != "base64" {
		return "", fmt.Errorf("unsupported content encoding: %s", fileContent.Encoding)
	}

	// GitHub chèn xuống dòng vào chuỗi base64
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(fileContent.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("cannot decode file content: %w", err)
	}

	return string(decoded), nil
}

// ListRootEntries liệt kê nội dung thư mục gốc của một repository
func (c *Caller) ListRootEntries(ctx context.Context, user, repo string) ([]ContentEntry, error) {
	contentsUrl := strings.ReplaceAll(c.Config.GithubApi.ContentsApiUrl, "{user}", user)
	contentsUrl = strings.ReplaceAll(contentsUrl, "{repo}", repo)
	contentsUrl = strings.ReplaceAll(contentsUrl, "{path}", "")

	resp, err := c.doGet(ctx, contentsUrl, c.Pool.Current().Token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var entries []ContentEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("cannot decode contents response: %w", err)
	}

	return entries, nil
}

// GetRepo lấy thông tin tổng quan của một repository
func (c *Caller) GetRepo(ctx context.Context, user, repo string) (*RepoResponse, error) {
	repoUrl := strings.ReplaceAll(c.Config.GithubApi.RepoApiUrl, "{user}", user)
	repoUrl = strings.ReplaceAll(repoUrl, "{repo}", repo)

	resp, err := c.doGet(ctx, repoUrl, c.Pool.Current().Token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	repoResponse := &RepoResponse{}
	if err := json.NewDecoder(resp.Body).Decode(repoResponse); err != nil {
		return nil, fmt.Errorf("cannot decode repo response: %w", err)
	}

	return repoResponse, nil
}

// CountCommits đếm tổng số commit của một repository
func (c *Caller) CountCommits(ctx context.Context, user, repo string) (int, error) {
	commitsUrl := strings.ReplaceAll(c.Config.GithubApi.CommitsApiUrl, "{user}", user)
	commitsUrl = strings.ReplaceAll(commitsUrl, "{repo}", repo)
	return c.countViaLastPage(ctx, commitsUrl)
}

// CountContributors đếm tổng số contributor của một repository
func (c *Caller) CountContributors(ctx context.Context, user, repo string) (int, error) {
	contributorsUrl := strings.ReplaceAll(c.Config.GithubApi.ContributorsApiUrl, "{user}", user)
	contributorsUrl = strings.ReplaceAll(contributorsUrl, "{repo}", repo)
	return c.countViaLastPage(ctx, contributorsUrl)
}

// countViaLastPage đếm số phần tử của một endpoint phân trang bằng cách gọi
// với per_page=1 và đọc số trang cuối trong header Link. Mỗi trang chứa đúng
// một phần tử nên số trang cuối chính là tổng số phần tử.
func (c *Caller) countViaLastPage(ctx context.Context, baseUrl string) (int, error) {
	sep := "?"
	if strings.Contains(baseUrl, "?") {
		sep = "&"
	}
	fullUrl := fmt.Sprintf("%s%sper_page=1", baseUrl, sep)

	resp, err := c.doGet(ctx, fullUrl, c.Pool.Current().Token)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Danh sách rỗng (ví dụ contributors của repo trống) trả về 204
	if resp.StatusCode == http.StatusNoContent {
		return 0, nil
	}

	if lastPage, ok := lastPageFromLink(resp.Header.Get("Link")); ok {
		return lastPage, nil
	}

	// Không có header Link nghĩa là tất cả nằm trong một trang
	var items []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return 0, fmt.Errorf("cannot decode list response: %w", err)
	}
	return len(items), nil
}

// lastPageFromLink đọc số trang của rel="last" trong header Link
func lastPageFromLink(header string) (int, bool) {
	if header == "" {
		return 0, false
	}
	for _, match := range linkRegex.FindAllStringSubmatch(header, -1) {
		if match[2] != "last" {
			continue
		}
		parsed, err := url.Parse(match[1])
		if err != nil {
			return 0, false
		}
		page, err := strconv.Atoi(parsed.Query().Get("page"))
		if err != nil {
			return 0, false
		}
		return page, true
	}
	return 0, false
}

// GetQuota đọc trạng thái quota hiện tại của một token từ /rate_limit.
// Endpoint này không bị tính vào quota nên có thể gọi trước mỗi nhóm request.
func (c *Caller) GetQuota(ctx context.Context, token string) (*limiter.QuotaState, error) {
	resp, err := c.doGet(ctx, c.Config.GithubApi.RateLimitApiUrl, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rateLimitResponse := &RateLimitResponse{}
	if err := json.NewDecoder(resp.Body).Decode(rateLimitResponse); err != nil {
		return nil, fmt.Errorf("cannot decode rate limit response: %w", err)
	}

	return &limiter.QuotaState{
		Limit:     rateLimitResponse.Rate.Limit,
		Remaining: rateLimitResponse.Rate.Remaining,
		ResetAt:   time.Unix(rateLimitResponse.Rate.Reset, 0),
	}, nil
}
