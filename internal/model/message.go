package model

// QueryMessage là cấu trúc dữ liệu performed query gửi tới Kafka
type QueryMessage struct {
	Query        string `json:"query"`
	SizeRange    string `json:"size_range"`
	Page         int    `json:"page"`
	ResultsCount int    `json:"results_count"`
	TotalPages   int    `json:"total_pages"`
}

// AdmittedRepoMessage là cấu trúc dữ liệu repository được ghi nhận gửi tới Kafka
type AdmittedRepoMessage struct {
	Metadata  RepoMetadata `json:"metadata"`
	Url       string       `json:"url"`
	FileType  string       `json:"file_type"`
	FilePath  string       `json:"file_path"`
	SizeRange string       `json:"size_range"`
}
