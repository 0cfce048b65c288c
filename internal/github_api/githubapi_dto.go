// Các cấu trúc ánh xạ phản hồi JSON của GitHub API

package githubapi

import "time"

type Owner struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

// SearchRepo là thông tin repository đính kèm trong mỗi kết quả code search
type SearchRepo struct {
	Id       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Owner    Owner  `json:"owner"`
	HtmlUrl  string `json:"html_url"`
	Private  bool   `json:"private"`
}

// CodeSearchItem là một file khớp với truy vấn code search
type CodeSearchItem struct {
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	Sha        string     `json:"sha"`
	HtmlUrl    string     `json:"html_url"`
	Repository SearchRepo `json:"repository"`
}

type CodeSearchResponse struct {
	TotalCount        int              `json:"total_count"`
	IncompleteResults bool             `json:"incomplete_results"`
	Items             []CodeSearchItem `json:"items"`
}

// ContentEntry là một mục trong danh sách nội dung của một thư mục,
// Type có giá trị "file", "dir" hoặc "symlink"
type ContentEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// FileContentResponse là nội dung một file, Content được mã hóa theo Encoding
type FileContentResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type RepoResponse struct {
	Id              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Owner           Owner     `json:"owner"`
	HtmlUrl         string    `json:"html_url"`
	StargazersCount int64     `json:"stargazers_count"`
	ForksCount      int64     `json:"forks_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RateBucket là quota của một nhóm endpoint trong phản hồi /rate_limit
type RateBucket struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
	Used      int   `json:"used"`
}

type RateLimitResponse struct {
	Rate RateBucket `json:"rate"`
}
