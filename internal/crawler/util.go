package crawler

import (
	"math/rand"
	"strings"
	"time"
)

// Phân tích full_name để lấy user và repo name
func extractUserAndRepo(fullName string) (string, string) {
	parts := strings.Split(fullName, "/")
	if len(parts) >= 2 {
		return parts[0], parts[1]
	}
	return "", fullName
}

// totalPages tính số trang dự kiến từ tổng số kết quả
func totalPages(totalCount, perPage int) int {
	if totalCount <= 0 || perPage <= 0 {
		return 0
	}
	return (totalCount + perPage - 1) / perPage
}

// backoffDelay tính thời gian chờ lũy tiến kèm jitter cho lần thử attempt,
// chặn trên ở 30 giây
func backoffDelay(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = 200 * time.Millisecond
	}

	delay := base << uint(attempt)
	ceiling := 30 * time.Second
	if delay > ceiling || delay <= 0 {
		delay = ceiling
	}

	jitter := time.Duration(rand.Int63n(int64(delay)/2 + 1))
	return delay + jitter
}
