package crawler

import (
	"fmt"

	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/pkg/db"
	"github.com/thep200/microservices-crawler/pkg/log"
)

func FactoryCrawler(version string, logger log.Logger, config *cfg.Config, mongo *db.Mongo) (Crawler, error) {
	switch version {
	case "v1":
		return NewCrawlerV1(logger, config, mongo)
	case "v2":
		// V2 gửi kết quả vào Kafka, consumer mới là phía ghi MongoDB
		return NewCrawlerV2(logger, config)
	default:
		return nil, fmt.Errorf("[ERROR] Unsupported crawler version: %s", version)
	}
}
