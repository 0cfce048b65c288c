package githubapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thep200/microservices-crawler/cfg"
	"github.com/thep200/microservices-crawler/internal/tokenpool"
	"github.com/thep200/microservices-crawler/pkg/log"
)

func newTestCaller(t *testing.T, handler http.HandlerFunc, tokens ...string) (*Caller, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	if len(tokens) == 0 {
		tokens = []string{"test-token"}
	}
	pool, err := tokenpool.NewPool(tokens)
	require.NoError(t, err)

	logger, err := log.NewCslLogger()
	require.NoError(t, err)

	config := &cfg.Config{
		GithubApi: cfg.GithubApi{
			SearchApiUrl:       server.URL + "/search/code",
			ContentsApiUrl:     server.URL + "/repos/{user}/{repo}/contents/{path}",
			RepoApiUrl:         server.URL + "/repos/{user}/{repo}",
			CommitsApiUrl:      server.URL + "/repos/{user}/{repo}/commits",
			ContributorsApiUrl: server.URL + "/repos/{user}/{repo}/contributors",
			RateLimitApiUrl:    server.URL + "/rate_limit",
		},
		Crawler: cfg.Crawler{PerPage: 100},
	}

	return NewCaller(logger, config, pool), server
}

func TestSearchCodeComposesQuery(t *testing.T) {
	var gotQuery, gotAuth string
	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"total_count": 250,
			"incomplete_results": false,
			"items": [
				{
					"name": "README.md",
					"path": "README.md",
					"repository": {
						"id": 1,
						"name": "shop",
						"full_name": "acme/shop",
						"owner": {"login": "acme", "id": 7},
						"html_url": "https://github.com/acme/shop"
					}
				},
				{
					"name": "docker-compose.yml",
					"path": "deploy/docker-compose.yml",
					"repository": {
						"id": 2,
						"name": "billing",
						"full_name": "acme/billing",
						"owner": {"login": "acme", "id": 7},
						"html_url": "https://github.com/acme/billing"
					}
				}
			]
		}`)
	})

	resp, err := caller.SearchCode(context.Background(), "microservices filename:README.md", "0..50", 2)
	require.NoError(t, err)

	assert.Equal(t, "microservices filename:README.md size:0..50", gotQuery)
	assert.Equal(t, "token test-token", gotAuth)
	assert.Equal(t, 250, resp.TotalCount)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "acme", resp.Items[0].Repository.Owner.Login)
	assert.Equal(t, "deploy/docker-compose.yml", resp.Items[1].Path)
}

func TestSearchCodeAnonymousWhenTokenEmpty(t *testing.T) {
	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		// Token rỗng thì không gửi header Authorization
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"total_count": 0, "items": []}`)
	}, "")

	resp, err := caller.SearchCode(context.Background(), "microservices", "0..50", 1)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestSearchCodeRateLimited(t *testing.T) {
	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "1893456000")
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := caller.SearchCode(context.Background(), "microservices", "0..50", 1)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
}

func TestSearchCodeSecondaryRateLimited(t *testing.T) {
	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := caller.SearchCode(context.Background(), "microservices", "0..50", 1)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
}

func TestForbiddenWithoutRateHeadersIsNotRateLimit(t *testing.T) {
	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := caller.SearchCode(context.Background(), "microservices", "0..50", 1)
	require.Error(t, err)
	assert.False(t, IsRateLimited(err))
}

func TestGetFileContentDecodesBase64(t *testing.T) {
	content := "## Microservices demo\nBacked by PostgreSQL."
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	// GitHub chèn xuống dòng vào chuỗi base64
	wrapped := encoded[:10] + "\n" + encoded[10:]

	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/shop/contents/README.md", r.URL.Path)
		fmt.Fprintf(w, `{"name": "README.md", "path": "README.md", "content": %q, "encoding": "base64"}`, wrapped)
	})

	got, err := caller.GetFileContent(context.Background(), "acme", "shop", "README.md")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestGetFileContentNotFound(t *testing.T) {
	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := caller.GetFileContent(context.Background(), "acme", "gone", "README.md")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestListRootEntries(t *testing.T) {
	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/shop/contents/", r.URL.Path)
		fmt.Fprint(w, `[
			{"name": "cmd", "path": "cmd", "type": "dir"},
			{"name": "internal", "path": "internal", "type": "dir"},
			{"name": "README.md", "path": "README.md", "type": "file"}
		]`)
	})

	entries, err := caller.ListRootEntries(context.Background(), "acme", "shop")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "dir", entries[0].Type)
	assert.Equal(t, "file", entries[2].Type)
}

func TestCountCommitsViaLinkHeader(t *testing.T) {
	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		w.Header().Set("Link", `<https://api.github.com/repos/acme/shop/commits?per_page=1&page=2>; rel="next", <https://api.github.com/repos/acme/shop/commits?per_page=1&page=446>; rel="last"`)
		fmt.Fprint(w, `[{"sha": "abc"}]`)
	})

	count, err := caller.CountCommits(context.Background(), "acme", "shop")
	require.NoError(t, err)
	assert.Equal(t, 446, count)
}

func TestCountCommitsSinglePage(t *testing.T) {
	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		// Không có header Link nghĩa là toàn bộ kết quả nằm trong một trang
		fmt.Fprint(w, `[{"sha": "abc"}]`)
	})

	count, err := caller.CountCommits(context.Background(), "acme", "shop")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCountContributorsEmptyRepo(t *testing.T) {
	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	count, err := caller.CountContributors(context.Background(), "acme", "empty")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestGetRepo(t *testing.T) {
	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/shop", r.URL.Path)
		fmt.Fprint(w, `{
			"id": 99,
			"name": "shop",
			"full_name": "acme/shop",
			"owner": {"login": "acme", "id": 7},
			"html_url": "https://github.com/acme/shop",
			"stargazers_count": 1234,
			"created_at": "2019-04-01T10:00:00Z",
			"updated_at": "2024-12-24T08:30:00Z"
		}`)
	})

	repo, err := caller.GetRepo(context.Background(), "acme", "shop")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), repo.StargazersCount)
	assert.Equal(t, 2019, repo.CreatedAt.Year())
	assert.Equal(t, 2024, repo.UpdatedAt.Year())
}

func TestGetQuota(t *testing.T) {
	var gotAuth string
	caller, _ := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/rate_limit", r.URL.Path)
		fmt.Fprint(w, `{
			"resources": {"core": {"limit": 5000, "remaining": 4999, "reset": 1893456000, "used": 1}},
			"rate": {"limit": 5000, "remaining": 7, "reset": 1893456000, "used": 4993}
		}`)
	})

	state, err := caller.GetQuota(context.Background(), "other-token")
	require.NoError(t, err)
	assert.Equal(t, "token other-token", gotAuth)
	assert.Equal(t, 5000, state.Limit)
	assert.Equal(t, 7, state.Remaining)
	assert.Equal(t, int64(1893456000), state.ResetAt.Unix())
}

func TestLastPageFromLink(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
		ok     bool
	}{
		{
			name:   "next and last",
			header: `<https://api.github.com/repos/a/b/commits?per_page=1&page=2>; rel="next", <https://api.github.com/repos/a/b/commits?per_page=1&page=37>; rel="last"`,
			want:   37,
			ok:     true,
		},
		{
			name:   "no last rel",
			header: `<https://api.github.com/repos/a/b/commits?per_page=1&page=1>; rel="prev"`,
			want:   0,
			ok:     false,
		},
		{
			name:   "empty header",
			header: "",
			want:   0,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := lastPageFromLink(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
