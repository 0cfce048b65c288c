// Gói enricher bổ sung metadata cho repository trước khi ghi nhận.
// Ba lần tra cứu độc lập với nhau, lần nào thất bại thì trường tương ứng
// nhận giá trị mặc định, pipeline không bao giờ dừng vì enrich lỗi.

package enricher

import (
	"context"
	"strconv"
	"time"

	"github.com/thep200/microservices-crawler/cfg"
	githubapi "github.com/thep200/microservices-crawler/internal/github_api"
	"github.com/thep200/microservices-crawler/internal/model"
	"github.com/thep200/microservices-crawler/pkg/log"
)

// FactsAPI đọc các số liệu tổng quan của một repository
type FactsAPI interface {
	GetRepo(ctx context.Context, user, repo string) (*githubapi.RepoResponse, error)
	CountCommits(ctx context.Context, user, repo string) (int, error)
	CountContributors(ctx context.Context, user, repo string) (int, error)
}

type Enricher struct {
	Logger log.Logger
	Config *cfg.Config
	Api    FactsAPI
}

func NewEnricher(logger log.Logger, config *cfg.Config, api FactsAPI) (*Enricher, error) {
	return &Enricher{
		Logger: logger,
		Config: config,
		Api:    api,
	}, nil
}

// FetchRepoMetadata thu thập metadata của một repository.
// Luôn trả về metadata hợp lệ, không trả về lỗi.
func (e *Enricher) FetchRepoMetadata(ctx context.Context, user, repo string) model.RepoMetadata {
	meta := model.NewRepoMetadata()

	summary, err := e.Api.GetRepo(ctx, user, repo)
	if err != nil {
		e.Logger.Warn(ctx, "Không thể lấy thông tin repo %s/%s: %v", user, repo, err)
	} else {
		meta.Stars = int(summary.StargazersCount)
		meta.CreatedAt = summary.CreatedAt.Format(time.RFC3339)
		meta.UpdatedAt = summary.UpdatedAt.Format(time.RFC3339)
	}

	commits, err := e.Api.CountCommits(ctx, user, repo)
	if err != nil {
		e.Logger.Warn(ctx, "Không thể đếm commit của %s/%s: %v", user, repo, err)
	} else {
		meta.Commits = strconv.Itoa(commits)
	}

	contributors, err := e.Api.CountContributors(ctx, user, repo)
	if err != nil {
		e.Logger.Warn(ctx, "Không thể đếm contributor của %s/%s: %v", user, repo, err)
	} else {
		meta.Contributors = strconv.Itoa(contributors)
	}

	return meta
}
