package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Buddy_Community/internal/model"
	"Buddy_Community/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type resolverFunc func(ctx context.Context, credential string) (*model.User, error)

func (f resolverFunc) Resolve(ctx context.Context, credential string) (*model.User, error) {
	return f(ctx, credential)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) pkg.Response {
	t.Helper()
	var resp pkg.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newAuthRouter(r Resolver) *gin.Engine {
	e := gin.New()
	e.Use(Ginzap(zap.NewNop()))
	e.GET("/me", AuthMiddleware(r), func(c *gin.Context) {
		pkg.Success(c, gin.H{"id": Actor(c).ID, "token": Token(c)})
	})
	return e
}

func TestAuthMiddleware(t *testing.T) {
	resolver := resolverFunc(func(_ context.Context, credential string) (*model.User, error) {
		switch credential {
		case "good":
			return &model.User{ID: "u1"}, nil
		case "ghost":
			return nil, pkg.ErrUnknownUser
		default:
			return nil, errors.New("redis down")
		}
	})
	e := newAuthRouter(resolver)

	cases := []struct {
		header string
		status int
		code   int
	}{
		{"", http.StatusUnauthorized, pkg.CodeInvalidCredential},
		{"Token good", http.StatusUnauthorized, pkg.CodeInvalidCredential},
		{"Bearer ghost", http.StatusUnauthorized, pkg.CodeUserNotFound},
		{"Bearer broken", http.StatusInternalServerError, pkg.CodeInternal},
		{"Bearer good", http.StatusOK, pkg.CodeSuccess},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		assert.Equal(t, tc.status, w.Code, tc.header)
		assert.Equal(t, tc.code, decode(t, w).Status.Code, tc.header)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	e := gin.New()
	e.Use(RateLimitMiddleware(2))
	e.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, pkg.CodeTooManyRequests, decode(t, w).Status.Code)
}

func TestLimiterSetSweepsPeriodically(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	set := newLimiterSet(rate.Every(time.Second), 1, t0)

	a := set.get("a", t0)
	assert.Same(t, a, set.get("a", t0.Add(time.Second)))

	// 未到清理周期，过期项仍保留
	set.get("b", t0.Add(30*time.Second))
	assert.Equal(t, 2, set.size())

	// a 在 t0+1s+limiterIdle 过期，b 在 t0+30s+limiterIdle 过期
	set.get("c", t0.Add(time.Second+limiterIdle+time.Second))
	assert.Equal(t, 2, set.size())
	assert.NotSame(t, a, set.get("a", t0.Add(time.Second+limiterIdle+2*time.Second)))

	// 刚清理过，下一次清理要等 limiterSweep
	later := t0.Add(30*time.Second + limiterIdle + time.Second)
	set.get("d", later)
	assert.Equal(t, 4, set.size())

	set.get("d", later.Add(limiterSweep))
	assert.Equal(t, 3, set.size())
}

func TestRateLimitDisabled(t *testing.T) {
	e := gin.New()
	e.Use(RateLimitMiddleware(0))
	e.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRecoveryWithZap(t *testing.T) {
	e := gin.New()
	e.Use(RecoveryWithZap(zap.NewNop()))
	e.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, pkg.CodeInternal, decode(t, w).Status.Code)
}
