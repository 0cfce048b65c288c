package model

import (
	"context"
	"time"

	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/pkg/db"
	"github.com/thep200/microservices-crawler/pkg/log"
)

// PerformedQuery là bản ghi audit của một lần gọi search API.
// Mỗi trang đã truy vấn tạo đúng một document, kể cả trang không có kết quả,
// collection không có ràng buộc unique.
type PerformedQuery struct {
	Model        `bson:"-"`
	Query        string    `bson:"query" json:"query"`
	SizeRange    string    `bson:"size_range" json:"size_range"`
	Page         int       `bson:"page" json:"page"`
	ResultsCount int       `bson:"results_count" json:"results_count"`
	TotalPages   int       `bson:"total_pages" json:"total_pages"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
}

func NewPerformedQuery(config *cfg.Config, logger log.Logger, mongo *db.Mongo) (*PerformedQuery, error) {
	return &PerformedQuery{
		Model: Model{
			Config: config,
			Logger: logger,
			Mongo:  mongo,
		},
	}, nil
}

func (p *PerformedQuery) CollectionName() string {
	return "performed_queries"
}

func (p *PerformedQuery) Create(ctx context.Context, query, sizeRange string, page, resultsCount, totalPages int) error {
	doc := &PerformedQuery{
		Query:        TruncateString(query, 512),
		SizeRange:    sizeRange,
		Page:         page,
		ResultsCount: resultsCount,
		TotalPages:   totalPages,
		Timestamp:    time.Now(),
	}

	collection, err := p.Mongo.Collection(p.CollectionName())
	if err != nil {
		p.Logger.Error(ctx, "Failed to get collection: %v", err)
		return err
	}

	if _, err := collection.InsertOne(ctx, doc); err != nil {
		p.Logger.Error(ctx, "Failed to insert performed query: %v", err)
		return err
	}

	return nil
}
