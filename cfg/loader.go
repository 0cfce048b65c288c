// Gói cfg cung cấp cấu hình cho toàn bộ ứng dụng.
// Loader là hợp đồng chung cho mọi nguồn cấu hình (viper, mock).

package cfg

import (
	"sync"
)

var (
	loader     Loader
	loaderOnce sync.Once
)

type Loader interface {
	Load() (*Config, error)
}

func NewLoader(l Loader) (Loader, error) {
	loaderOnce.Do(func() {
		loader = l
	})
	return loader, nil
}
