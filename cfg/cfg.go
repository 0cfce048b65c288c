package cfg

type (
	App struct {
		Name           string
		Version        string
		CrawlerVersion string
	}

	Mongo struct {
		Host           string
		Port           string
		Username       string
		Password       string
		Database       string
		MaxPoolSize    uint64
		ConnectTimeout int
	}

	GithubApi struct {
		AccessTokens       []string
		SearchApiUrl       string
		ContentsApiUrl     string
		RepoApiUrl         string
		CommitsApiUrl      string
		ContributorsApiUrl string
		RateLimitApiUrl    string
		RequestsPerSecond  int
		ThrottleDelay      int
		RateLimitThreshold int
		MaxRetries         int
	}

	// Query là một truy vấn tìm kiếm cố định kèm loại artifact mà nó nhắm tới
	Query struct {
		Text         string
		ArtifactType string
	}

	Crawler struct {
		Queries            []Query
		SizeStartKb        int
		SizeMaxKb          int
		SizeStepKb         int
		MaxPages           int
		PerPage            int
		MinDirCount        int
		MinComposeServices int
		PartitionWorkers   int
	}

	KafkaProducer struct {
		TopicQuery string
		TopicRepo  string
	}

	Kafka struct {
		Brokers  []string
		Producer KafkaProducer
	}
)

type Config struct {
	App       App
	Mongo     Mongo
	GithubApi GithubApi
	Crawler   Crawler
	Kafka     Kafka
}
