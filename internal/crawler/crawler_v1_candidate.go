package crawler

import (
	"context"
	"fmt"

	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/internal/classifier"
	githubapi "github.com/thep200/microservices-crawler/internal/github_api"
	"github.com/thep200/microservices-crawler/internal/partition"
)

// processCandidate đưa một kết quả tìm kiếm qua pipeline bốn bước: tải nội
// dung file, phân loại, thẩm định cấu trúc thư mục rồi enrich metadata.
// Trả về true khi repository được ghi nhận vào store.
func (c *CrawlerV1) processCandidate(ctx context.Context, query cfg.Query, rng partition.SizeRange, item githubapi.CodeSearchItem) bool {
	user := item.Repository.Owner.Login
	repoName := item.Repository.Name
	if user == "" {
		user, repoName = extractUserAndRepo(item.Repository.FullName)
		if user == "" {
			c.Logger.Warn(ctx, "Bỏ qua ứng viên không xác định được owner: %s", item.Repository.FullName)
			return false
		}
	}

	// Tải nội dung file khớp truy vấn
	c.applyRateLimit(ctx)
	c.Guard.CheckAndRotate(ctx)
	content, err := c.Caller.GetFileContent(ctx, user, repoName, item.Path)
	if err != nil {
		c.Logger.Warn(ctx, "Không thể tải %s của %s/%s: %v", item.Path, user, repoName, err)
		return false
	}

	if !c.Classifier.Classify(ctx, classifier.ArtifactType(query.ArtifactType), content) {
		return false
	}

	// Thẩm định cấu trúc thư mục gốc
	c.applyRateLimit(ctx)
	c.Guard.CheckAndRotate(ctx)
	if !c.Qualifier.HasCodeStructure(ctx, user, repoName) {
		return false
	}

	// Enrich metadata, từng phần có giá trị mặc định riêng khi lỗi
	c.applyRateLimit(ctx)
	c.Guard.CheckAndRotate(ctx)
	meta := c.Enricher.FetchRepoMetadata(ctx, user, repoName)

	repoUrl := item.Repository.HtmlUrl
	if repoUrl == "" {
		repoUrl = fmt.Sprintf("https://github.com/%s/%s", user, repoName)
	}

	if err := c.RepoMd.Create(ctx, meta, repoUrl, query.ArtifactType, item.Path, rng.String()); err != nil {
		c.Logger.Error(ctx, "Không thể lưu repository %s/%s: %v", user, repoName, err)
		return false
	}

	c.Logger.Info(ctx, "✅ Ghi nhận %s/%s (%s, %s)", user, repoName, query.ArtifactType, rng.String())
	return true
}
