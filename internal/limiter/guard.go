package limiter

import (
	"context"
	"time"

	"github.com/thep200/microservices-crawler/internal/tokenpool"
	"github.com/thep200/microservices-crawler/pkg/log"
)

// QuotaState là trạng thái quota của một token, đọc trực tiếp từ GitHub
// trước mỗi lần kiểm tra thay vì tự đếm ở phía client
type QuotaState struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// QuotaAPI đọc trạng thái quota hiện tại của một token
type QuotaAPI interface {
	GetQuota(ctx context.Context, token string) (*QuotaState, error)
}

// Guard kiểm tra quota của token hiện tại trước mỗi nhóm request và xoay
// vòng pool khi số request còn lại xuống dưới ngưỡng. Guard không ngủ chờ
// reset, việc backoff nằm ở vòng retry của crawler.
type Guard struct {
	Logger    log.Logger
	Pool      *tokenpool.Pool
	Quota     QuotaAPI
	Threshold int
}

func NewGuard(logger log.Logger, pool *tokenpool.Pool, quota QuotaAPI, threshold int) (*Guard, error) {
	return &Guard{
		Logger:    logger,
		Pool:      pool,
		Quota:     quota,
		Threshold: threshold,
	}, nil
}

// CheckAndRotate đọc quota của token hiện tại và xoay vòng khi cần.
// Không đọc được quota thì tiếp tục với token hiện tại, request kế tiếp
// sẽ tự va vào rate limit nếu token thực sự cạn.
func (g *Guard) CheckAndRotate(ctx context.Context) {
	cred := g.Pool.Current()
	state, err := g.Quota.GetQuota(ctx, cred.Token)
	if err != nil {
		g.Logger.Warn(ctx, "Không thể kiểm tra quota của token %d, tiếp tục với token hiện tại: %v", cred.Index, err)
		return
	}

	if state.Remaining <= g.Threshold {
		next := g.Pool.AdvanceFrom(cred.Index)
		g.Logger.Info(ctx, "🚫 Token %d còn %d/%d request (reset %s), chuyển sang token %d",
			cred.Index, state.Remaining, state.Limit, state.ResetAt.Format(time.RFC3339), next.Index)
	}
}
