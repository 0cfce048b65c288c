// Gói partition chia miền kích thước file thành các khoảng nhỏ để lách giới
// hạn 1000 kết quả của GitHub Search API: mỗi khoảng được tìm kiếm riêng.

package partition

import (
	"fmt"
)

// SizeRange là một khoảng kích thước file tính theo KB, nửa mở [MinKb, MaxKb)
type SizeRange struct {
	MinKb int
	MaxKb int
}

// String render khoảng theo cú pháp qualifier size của GitHub
func (s SizeRange) String() string {
	return fmt.Sprintf("%d..%d", s.MinKb, s.MaxKb)
}

// Generate sinh danh sách khoảng tăng dần, không chồng lặp, phủ kín [start, max).
// Khoảng cuối có thể vượt qua max khi (max - start) không chia hết cho step.
func Generate(start, max, step int) ([]SizeRange, error) {
	if step < 1 {
		return nil, fmt.Errorf("partition: step must be at least 1, got %d", step)
	}
	if max <= start {
		return nil, fmt.Errorf("partition: max (%d) must be greater than start (%d)", max, start)
	}

	ranges := make([]SizeRange, 0, (max-start+step-1)/step)
	for lo := start; lo < max; lo += step {
		ranges = append(ranges, SizeRange{MinKb: lo, MaxKb: lo + step})
	}
	return ranges, nil
}
