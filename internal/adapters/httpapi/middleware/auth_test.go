package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"yatube/internal/core/actor"
)

type stubParser map[string]actor.Actor

func (p stubParser) ParseToken(_ context.Context, raw string) (actor.Actor, error) {
	if a, ok := p[raw]; ok {
		return a, nil
	}
	return actor.Anonymous(), errors.New("bad token")
}

func newEngine(config *AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	leo := actor.New(uuid.Must(uuid.NewV4()), "leo")
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()), Auth(stubParser{"good": leo}, zap.NewNop(), config))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, Actor(c).String())
	})
	return r
}

func TestAuth(t *testing.T) {
	cases := []struct {
		name   string
		config *AuthConfig
		header string
		cookie string
		status int
		body   string
	}{
		{name: "no token", status: http.StatusOK, body: "anonymous"},
		{name: "bearer", header: "Bearer good", status: http.StatusOK, body: "leo"},
		{name: "cookie", cookie: "good", status: http.StatusOK, body: "leo"},
		{name: "other scheme", header: "Basic abc", status: http.StatusOK, body: "anonymous"},
		{name: "invalid bearer", header: "Bearer bad", status: http.StatusUnauthorized},
		{name: "invalid cookie lenient", config: &AuthConfig{InvalidTokenAnonymous: true}, cookie: "bad", status: http.StatusOK, body: "anonymous"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newEngine(tc.config)
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}

func TestActorDefaultsToAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.False(t, Actor(c).Authenticated)
}
