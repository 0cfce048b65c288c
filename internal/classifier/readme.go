package classifier

import (
	"regexp"
	"strings"
)

// microservicePattern khớp "microservice"/"microservices" kèm biến thể có gạch nối
var microservicePattern = regexp.MustCompile(`micro-?services?`)

// classifyReadme chấp nhận README khi văn bản vừa nhắc tới microservices vừa
// chứa ít nhất một keyword database. Nội dung được chuẩn hóa chữ thường đúng
// một lần và cả hai kiểm tra chạy trên cùng chuỗi đã chuẩn hóa đó.
func (c *Classifier) classifyReadme(content string) bool {
	normalized := strings.ToLower(content)

	if !microservicePattern.MatchString(normalized) {
		return false
	}

	return containsDatabaseKeyword(normalized)
}
