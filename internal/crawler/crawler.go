// Gói crawler điều phối toàn bộ quy trình thu thập: sinh khoảng kích thước,
// phân trang kết quả tìm kiếm và đưa từng ứng viên qua pipeline
// phân loại, thẩm định, enrich rồi ghi nhận.

package crawler

import (
	"context"

	githubapi "github.com/thep200/microservices-crawler/internal/github_api"
	"github.com/thep200/microservices-crawler/internal/model"
)

// Crawler là hợp đồng chung cho mọi phiên bản crawler
type Crawler interface {
	Crawl() bool
}

// SearchAPI là phần GitHub API mà vòng phân trang và pipeline ứng viên cần
type SearchAPI interface {
	SearchCode(ctx context.Context, query, sizeExpr string, page int) (*githubapi.CodeSearchResponse, error)
	GetFileContent(ctx context.Context, user, repo, path string) (string, error)
}

// QueryStore ghi bản ghi audit cho mỗi trang đã truy vấn
type QueryStore interface {
	Create(ctx context.Context, query, sizeRange string, page, resultsCount, totalPages int) error
}

// RepoStore ghi repository đã qua đủ các bước kiểm tra
type RepoStore interface {
	Create(ctx context.Context, meta model.RepoMetadata, url, fileType, filePath, sizeRange string) error
}
