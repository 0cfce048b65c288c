package cfg

type MockLoader struct{}

func NewMockLoader() (*MockLoader, error) {
	return &MockLoader{}, nil
}

func (yl *MockLoader) Load() (*Config, error) {
	return &Config{
		// App
		App: App{
			Name:           "microservices-crawler",
			Version:        "0.0.1",
			CrawlerVersion: "v1",
		},

		// Mongo
		Mongo: Mongo{
			Host:           "127.0.0.1",
			Port:           "27017",
			Username:       "",
			Password:       "",
			Database:       "microservices_crawler",
			MaxPoolSize:    20,
			ConnectTimeout: 10,
		},

		// GithubApi
		GithubApi: GithubApi{
			AccessTokens:       []string{""},
			SearchApiUrl:       "https://api.github.com/search/code",
			ContentsApiUrl:     "https://api.github.com/repos/{user}/{repo}/contents/{path}",
			RepoApiUrl:         "https://api.github.com/repos/{user}/{repo}",
			CommitsApiUrl:      "https://api.github.com/repos/{user}/{repo}/commits",
			ContributorsApiUrl: "https://api.github.com/repos/{user}/{repo}/contributors",
			RateLimitApiUrl:    "https://api.github.com/rate_limit",
			RequestsPerSecond:  5,
			ThrottleDelay:      200,
			RateLimitThreshold: 10,
			MaxRetries:         5,
		},

		// Crawler
		Crawler: Crawler{
			Queries: []Query{
				{Text: "microservices filename:README.md", ArtifactType: "readme"},
				{Text: "microservices filename:docker-compose.yml", ArtifactType: "docker_compose"},
			},
			SizeStartKb:        0,
			SizeMaxKb:          500,
			SizeStepKb:         50,
			MaxPages:           10,
			PerPage:            100,
			MinDirCount:        2,
			MinComposeServices: 3,
			PartitionWorkers:   3,
		},

		// Kafka
		Kafka: Kafka{
			Brokers: []string{"localhost:9092"},
			Producer: KafkaProducer{
				TopicQuery: "crawler.performed-queries",
				TopicRepo:  "crawler.admitted-repos",
			},
		},
	}, nil
}
