package githubapi

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound báo hiệu resource không tồn tại hoặc không truy cập được (404)
var ErrNotFound = errors.New("githubapi: resource not found")

// RateLimitError báo hiệu token hiện tại đã chạm rate limit của GitHub
type RateLimitError struct {
	StatusCode int
	ResetAt    time.Time
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return fmt.Sprintf("githubapi: rate limited (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("githubapi: rate limited (status %d), reset at %s", e.StatusCode, e.ResetAt.Format(time.RFC3339))
}

// IsRateLimited kiểm tra một lỗi có phải do rate limit hay không
func IsRateLimited(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}

// IsNotFound kiểm tra một lỗi có phải 404 hay không
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
