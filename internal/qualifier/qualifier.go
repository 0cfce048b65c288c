// Gói qualifier kiểm tra một repository đã qua phân loại có cấu trúc code
// thực sự hay không, dựa trên số thư mục ở cấp gốc. Repo chỉ có vài file rời
// thường là demo hoặc tài liệu chứ không phải hệ thống nhiều service.

package qualifier

import (
	"context"

	"github.com/thep200/microservices-crawler/cfg"
	githubapi "github.com/thep200/microservices-crawler/internal/github_api"
	"github.com/thep200/microservices-crawler/pkg/log"
)

// ContentsAPI liệt kê nội dung thư mục gốc của một repository
type ContentsAPI interface {
	ListRootEntries(ctx context.Context, user, repo string) ([]githubapi.ContentEntry, error)
}

type Qualifier struct {
	Logger log.Logger
	Config *cfg.Config
	Api    ContentsAPI
}

func NewQualifier(logger log.Logger, config *cfg.Config, api ContentsAPI) (*Qualifier, error) {
	return &Qualifier{
		Logger: logger,
		Config: config,
		Api:    api,
	}, nil
}

// HasCodeStructure chấp nhận repository có đủ số thư mục gốc tối thiểu.
// Không liệt kê được thư mục gốc thì loại, không đoán mò.
func (q *Qualifier) HasCodeStructure(ctx context.Context, user, repo string) bool {
	entries, err := q.Api.ListRootEntries(ctx, user, repo)
	if err != nil {
		q.Logger.Warn(ctx, "Không thể liệt kê thư mục gốc của %s/%s: %v", user, repo, err)
		return false
	}

	dirCount := 0
	for _, entry := range entries {
		if entry.Type == "dir" {
			dirCount++
		}
	}

	return dirCount >= q.Config.Crawler.MinDirCount
}
