package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/pkg/log"
)

func newTestClassifier(t *testing.T, minComposeServices int) *Classifier {
	t.Helper()
	logger, err := log.NewCslLogger()
	require.NoError(t, err)
	config := &cfg.Config{
		Crawler: cfg.Crawler{MinComposeServices: minComposeServices},
	}
	classifier, err := NewClassifier(logger, config)
	require.NoError(t, err)
	return classifier
}

func TestClassifyReadme(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "microservices and database",
			content: "This project is a microservices demo backed by PostgreSQL.",
			want:    true,
		},
		{
			name:    "hyphenated singular",
			content: "A micro-service template wired to redis for caching.",
			want:    true,
		},
		{
			name:    "uppercase content is normalized once for both checks",
			content: "MICROSERVICES ARCHITECTURE WITH MONGODB",
			want:    true,
		},
		{
			name:    "microservices without database",
			content: "A microservices playground with queues and gateways.",
			want:    false,
		},
		{
			name:    "database without microservices",
			content: "A simple blog storing posts in MySQL.",
			want:    false,
		},
		{
			name:    "empty content",
			content: "",
			want:    false,
		},
		{
			name:    "keyword inside larger word still matches",
			content: "We split the monolith into microservices; see mysqldump notes.",
			want:    true,
		},
	}

	classifier := newTestClassifier(t, 3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(context.Background(), ArtifactReadme, tt.content)
			assert.Equal(t, tt.want, got)
		})
	}
}

const composeWithDatabase = `
version: "3"
services:
  gateway:
    image: acme/gateway:1.2
  orders:
    image: acme/orders:1.2
  db:
    image: postgres:15-alpine
`

const composeWithoutDatabase = `
services:
  gateway:
    image: acme/gateway:1.2
  orders:
    image: acme/orders:1.2
  payments:
    image: acme/payments:1.2
`

const composeTwoServices = `
services:
  app:
    image: acme/app:latest
  db:
    image: mysql:8
`

const composeNoServicesKey = `
version: "3"
volumes:
  data: {}
`

const composeUppercaseImage = `
services:
  gateway:
    image: acme/gateway:1.2
  orders:
    image: acme/orders:1.2
  cache:
    image: Redis:7
`

func TestClassifyCompose(t *testing.T) {
	tests := []struct {
		name        string
		minServices int
		content     string
		want        bool
	}{
		{
			name:        "enough services with database image",
			minServices: 3,
			content:     composeWithDatabase,
			want:        true,
		},
		{
			name:        "enough services without database image",
			minServices: 3,
			content:     composeWithoutDatabase,
			want:        false,
		},
		{
			name:        "too few services even with database",
			minServices: 3,
			content:     composeTwoServices,
			want:        false,
		},
		{
			name:        "raised minimum rejects previously passing file",
			minServices: 4,
			content:     composeWithDatabase,
			want:        false,
		},
		{
			name:        "missing services key rejects without error",
			minServices: 3,
			content:     composeNoServicesKey,
			want:        false,
		},
		{
			name:        "image match is case insensitive",
			minServices: 3,
			content:     composeUppercaseImage,
			want:        true,
		},
		{
			name:        "malformed yaml rejects",
			minServices: 3,
			content:     "services: {",
			want:        false,
		},
		{
			name:        "wrong shape rejects",
			minServices: 3,
			content:     "services: just-a-string",
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := newTestClassifier(t, tt.minServices)
			got := classifier.Classify(context.Background(), ArtifactDockerCompose, tt.content)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyUnknownArtifact(t *testing.T) {
	classifier := newTestClassifier(t, 3)
	got := classifier.Classify(context.Background(), ArtifactType("yaml"), composeWithDatabase)
	assert.False(t, got)
}
