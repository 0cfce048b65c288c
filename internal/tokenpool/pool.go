// Gói tokenpool quản lý danh sách access token dùng để gọi GitHub API.
// Pool xoay vòng token theo thứ tự cấu hình khi token hiện tại gần cạn quota.

package tokenpool

import (
	"errors"
	"sync"
)

var ErrEmptyPool = errors.New("tokenpool: no access tokens configured")

// Credential là một token kèm vị trí của nó trong pool
type Credential struct {
	Token string
	Index int
}

type Pool struct {
	mu      sync.Mutex
	tokens  []string
	current int
}

// NewPool tạo pool từ danh sách token trong cấu hình.
// Pool rỗng là lỗi cấu hình và phải dừng ứng dụng ngay khi khởi động.
func NewPool(tokens []string) (*Pool, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyPool
	}
	cp := make([]string, len(tokens))
	copy(cp, tokens)
	return &Pool{tokens: cp}, nil
}

func (p *Pool) Current() Credential {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Credential{Token: p.tokens[p.current], Index: p.current}
}

// Advance chuyển sang token kế tiếp, quay vòng về đầu khi hết danh sách
func (p *Pool) Advance() Credential {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = (p.current + 1) % len(p.tokens)
	return Credential{Token: p.tokens[p.current], Index: p.current}
}

// AdvanceFrom chỉ xoay vòng khi index vẫn là token hiện tại.
// Tránh việc hai goroutine cùng phát hiện cạn quota và xoay qua token còn tốt.
func (p *Pool) AdvanceFrom(index int) Credential {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == index {
		p.current = (p.current + 1) % len(p.tokens)
	}
	return Credential{Token: p.tokens[p.current], Index: p.current}
}

func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tokens)
}
