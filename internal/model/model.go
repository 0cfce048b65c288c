package model

import (
	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/pkg/db"
	"github.com/thep200/microservices-crawler/pkg/log"
)

// Model mang các phụ thuộc chung cho mọi document model,
// không được serialize vào database
type Model struct {
	Config *cfg.Config
	Logger log.Logger
	Mongo  *db.Mongo
}
