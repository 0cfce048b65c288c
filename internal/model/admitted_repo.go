package model

import (
	"context"
	"fmt"
	"time"

	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/pkg/db"
	"github.com/thep200/microservices-crawler/pkg/log"
	"go.mongodb.org/mongo-driver/bson"
)

// MetadataNA là giá trị thay thế khi một lần enrich thất bại
const MetadataNA = "N/A"

// RepoMetadata là phần enrich của một repository được ghi nhận.
// Mỗi trường có giá trị mặc định riêng khi lần tra cứu tương ứng thất bại.
type RepoMetadata struct {
	Stars        int    `bson:"stars" json:"stars"`
	Commits      string `bson:"commits" json:"commits"`
	Contributors string `bson:"contributors" json:"contributors"`
	CreatedAt    string `bson:"created_at" json:"created_at"`
	UpdatedAt    string `bson:"updated_at" json:"updated_at"`
}

// NewRepoMetadata trả về metadata với đầy đủ giá trị mặc định
func NewRepoMetadata() RepoMetadata {
	return RepoMetadata{
		Stars:        0,
		Commits:      MetadataNA,
		Contributors: MetadataNA,
		CreatedAt:    MetadataNA,
		UpdatedAt:    MetadataNA,
	}
}

// AdmittedRepo là một repository đã qua đủ ba bước phân loại, thẩm định và
// enrich. Collection không chống trùng lặp, một repo có thể xuất hiện nhiều
// lần khi khớp nhiều truy vấn hoặc nhiều khoảng kích thước.
type AdmittedRepo struct {
	Model     `bson:"-"`
	Metadata  RepoMetadata `bson:"metadata" json:"metadata"`
	Url       string       `bson:"url" json:"url"`
	FileType  string       `bson:"file_type" json:"file_type"`
	FilePath  string       `bson:"file_path" json:"file_path"`
	SizeRange string       `bson:"size_range" json:"size_range"`
	Timestamp time.Time    `bson:"timestamp" json:"timestamp"`
}

func NewAdmittedRepo(config *cfg.Config, logger log.Logger, mongo *db.Mongo) (*AdmittedRepo, error) {
	return &AdmittedRepo{
		Model: Model{
			Config: config,
			Logger: logger,
			Mongo:  mongo,
		},
	}, nil
}

func (a *AdmittedRepo) CollectionName() string {
	return "admitted_repositories"
}

func (a *AdmittedRepo) Create(ctx context.Context, meta RepoMetadata, url, fileType, filePath, sizeRange string) error {
	doc := &AdmittedRepo{
		Metadata:  meta,
		Url:       TruncateString(url, 512),
		FileType:  fileType,
		FilePath:  TruncateString(filePath, 512),
		SizeRange: sizeRange,
		Timestamp: time.Now(),
	}

	collection, err := a.Mongo.Collection(a.CollectionName())
	if err != nil {
		a.Logger.Error(ctx, "Failed to get collection: %v", err)
		return err
	}

	if _, err := collection.InsertOne(ctx, doc); err != nil {
		a.Logger.Error(ctx, "Failed to insert admitted repository: %v", err)
		return err
	}

	return nil
}

// CreateBatch ghi một lô repository nhận từ Kafka bằng một lần InsertMany
func (a *AdmittedRepo) CreateBatch(ctx context.Context, messages []AdmittedRepoMessage) error {
	if len(messages) == 0 {
		return nil
	}

	collection, err := a.Mongo.Collection(a.CollectionName())
	if err != nil {
		return fmt.Errorf("failed to get collection: %w", err)
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(messages))
	for _, msg := range messages {
		docs = append(docs, &AdmittedRepo{
			Metadata:  msg.Metadata,
			Url:       TruncateString(msg.Url, 512),
			FileType:  msg.FileType,
			FilePath:  TruncateString(msg.FilePath, 512),
			SizeRange: msg.SizeRange,
			Timestamp: now,
		})
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to batch insert admitted repositories: %w", err)
	}

	return nil
}

// FindAll đọc toàn bộ repository đã ghi nhận, dùng cho export
func (a *AdmittedRepo) FindAll(ctx context.Context) ([]AdmittedRepo, error) {
	collection, err := a.Mongo.Collection(a.CollectionName())
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	cursor, err := collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query admitted repositories: %w", err)
	}
	defer cursor.Close(ctx)

	var repos []AdmittedRepo
	if err := cursor.All(ctx, &repos); err != nil {
		return nil, fmt.Errorf("failed to decode admitted repositories: %w", err)
	}

	return repos, nil
}
