package reaction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xinrengui/blog-backend/internal/ratelimit"
)

func newTestRouter(store Store, cache TagInvalidator, limiter ratelimit.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(store, cache)
	router.GET("/api/reactions", handler.GetReactions)
	if limiter != nil {
		router.PATCH("/api/reactions", ratelimit.Middleware(limiter), handler.PatchReaction)
	} else {
		router.PATCH("/api/reactions", handler.PatchReaction)
	}
	return router
}

func TestGetReactionsMissingID(t *testing.T) {
	router := newTestRouter(NewMemoryStore(), NewMemoryInvalidator(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reactions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReactionsDefaultsToZeros(t *testing.T) {
	router := newTestRouter(NewMemoryStore(), NewMemoryInvalidator(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reactions?id=post-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var vector []int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vector))
	require.Equal(t, []int64{0, 0, 0, 0}, vector)
}

func TestPatchReactionIncrementsAndInvalidates(t *testing.T) {
	cache := NewMemoryInvalidator()
	router := newTestRouter(NewMemoryStore(), cache, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/reactions?id=post-1&index=1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []int64 `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, []int64{0, 1, 0, 0}, body.Data)

	// 成功的自增必须让对应的缓存标签失效
	require.Equal(t, []string{"reactions:post-1"}, cache.Invalidated())
}

func TestPatchReactionInvalidArguments(t *testing.T) {
	store := NewMemoryStore()
	cache := NewMemoryInvalidator()
	router := newTestRouter(store, cache, nil)

	cases := []string{
		"/api/reactions",                  // 缺少id和index
		"/api/reactions?id=post-1",        // 缺少index
		"/api/reactions?index=1",          // 缺少id
		"/api/reactions?id=post-1&index=4", // index越界
		"/api/reactions?id=post-1&index=-1",
		"/api/reactions?id=post-1&index=abc",
	}
	for _, path := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, path, nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code, "path: %s", path)
	}

	// 全部拒绝，不应有任何失效副作用
	require.Empty(t, cache.Invalidated())

	vector, err := store.Get(context.Background(), "post-1")
	require.NoError(t, err)
	require.Equal(t, Vector{0, 0, 0, 0}, vector)
}

func TestPatchReactionRateLimited(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(ratelimit.Config{
		Window:      10 * time.Second,
		MaxRequests: 2,
	})
	store := NewMemoryStore()
	router := newTestRouter(store, NewMemoryInvalidator(), limiter)

	// 前两次在窗口内放行
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/reactions?id=post-1&index=0", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	// 第三次被限流，且被保护的自增没有执行
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/reactions?id=post-1&index=0", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	vector, err := store.Get(context.Background(), "post-1")
	require.NoError(t, err)
	require.Equal(t, int64(2), vector[0])
}
