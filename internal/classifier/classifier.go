// Gói classifier quyết định một file ứng viên có dấu hiệu của kiến trúc
// microservices kèm database hay không. Classifier chỉ đọc nội dung file,
// không gọi API, nên có thể kiểm thử độc lập.

package classifier

import (
	"context"

	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/pkg/log"
)

// ArtifactType là loại file mà một truy vấn tìm kiếm nhắm tới
type ArtifactType string

const (
	ArtifactReadme        ArtifactType = "readme"
	ArtifactDockerCompose ArtifactType = "docker_compose"
)

type Classifier struct {
	Logger log.Logger
	Config *cfg.Config
}

func NewClassifier(logger log.Logger, config *cfg.Config) (*Classifier, error) {
	return &Classifier{
		Logger: logger,
		Config: config,
	}, nil
}

// Classify chạy heuristic tương ứng với loại artifact trên nội dung file
func (c *Classifier) Classify(ctx context.Context, artifact ArtifactType, content string) bool {
	switch artifact {
	case ArtifactReadme:
		return c.classifyReadme(content)
	case ArtifactDockerCompose:
		return c.classifyCompose(ctx, content)
	default:
		c.Logger.Warn(ctx, "Loại artifact không được hỗ trợ: %s", artifact)
		return false
	}
}
