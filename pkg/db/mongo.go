package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/thep200/microservices-crawler/cfg"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	initErr error
)

type Mongo struct {
	Config *cfg.Config
	once   sync.Once
	client *mongo.Client
}

func NewMongo(config *cfg.Config) (*Mongo, error) {
	return &Mongo{
		Config: config,
	}, nil
}

func (m *Mongo) URI() string {
	return fmt.Sprintf("mongodb://%s:%s", m.Config.Mongo.Host, m.Config.Mongo.Port)
}

func (m *Mongo) Client() (*mongo.Client, error) {
	m.once.Do(func() {
		opts := options.Client().
			ApplyURI(m.URI()).
			SetMaxPoolSize(m.Config.Mongo.MaxPoolSize).
			SetConnectTimeout(time.Duration(m.Config.Mongo.ConnectTimeout) * time.Second)

		// Chỉ bật xác thực khi có username
		if m.Config.Mongo.Username != "" {
			opts.SetAuth(options.Credential{
				Username:   m.Config.Mongo.Username,
				Password:   m.Config.Mongo.Password,
				AuthSource: m.Config.Mongo.Database,
			})
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(m.Config.Mongo.ConnectTimeout)*time.Second)
		defer cancel()

		var client *mongo.Client
		client, initErr = mongo.Connect(ctx, opts)
		if initErr != nil {
			return
		}

		//
		m.client = client
	})
	return m.client, initErr
}

func (m *Mongo) Collection(name string) (*mongo.Collection, error) {
	client, err := m.Client()
	if err != nil {
		return nil, err
	}
	return client.Database(m.Config.Mongo.Database).Collection(name), nil
}

func (m *Mongo) Ping() error {
	client, err := m.Client()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(m.Config.Mongo.ConnectTimeout)*time.Second)
	defer cancel()
	return client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close() error {
	if m.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return m.client.Disconnect(ctx)
	}
	return nil
}
