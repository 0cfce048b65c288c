package classifier

import (
	"context"
	"strings"

	"gopkg.in/yaml.v3"
)

type composeFile struct {
	Services map[string]composeService `yaml:"services"`
}

type composeService struct {
	Image string `yaml:"image"`
}

// classifyCompose chấp nhận một docker-compose file khi nó khai báo đủ số
// service tối thiểu và có ít nhất một service dùng image database.
// File không parse được bị loại, file thiếu khóa services có 0 service.
func (c *Classifier) classifyCompose(ctx context.Context, content string) bool {
	var compose composeFile
	if err := yaml.Unmarshal([]byte(content), &compose); err != nil {
		c.Logger.Warn(ctx, "Không thể parse docker-compose: %v", err)
		return false
	}

	if len(compose.Services) < c.Config.Crawler.MinComposeServices {
		return false
	}

	for _, service := range compose.Services {
		if containsDatabaseKeyword(strings.ToLower(service.Image)) {
			return true
		}
	}

	return false
}
