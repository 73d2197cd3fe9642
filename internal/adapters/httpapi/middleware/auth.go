package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/core/actor"
)

const (
	ActorKey    = "actor"
	TokenCookie = "token"
)

// TokenParser resolves a bearer token to the actor it was issued for.
type TokenParser interface {
	ParseToken(ctx context.Context, raw string) (actor.Actor, error)
}

// AuthConfig tunes how Auth handles bad tokens.
type AuthConfig struct {
	// InvalidTokenAnonymous treats a bad token as no token instead of
	// rejecting the request with 401.
	InvalidTokenAnonymous bool
}

// Auth stores the request's actor under ActorKey. Requests without a token
// proceed as anonymous; authorization is decided later by the services.
func Auth(parser TokenParser, logger *zap.Logger, config *AuthConfig) gin.HandlerFunc {
	if config == nil {
		config = &AuthConfig{}
	}
	return func(c *gin.Context) {
		c.Set(ActorKey, actor.Anonymous())

		raw, ok := extractToken(c)
		if !ok {
			c.Next()
			return
		}
		a, err := parser.ParseToken(c.Request.Context(), raw)
		if err != nil {
			logger.Debug("Rejected token", zap.String("path", c.FullPath()), zap.Error(err))
			if config.InvalidTokenAnonymous {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			return
		}
		c.Set(ActorKey, a)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") && token != "" {
			return strings.TrimSpace(token), true
		}
		return "", false
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// Actor returns the actor stored by Auth, or an anonymous one.
func Actor(c *gin.Context) actor.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if a, ok := v.(actor.Actor); ok {
			return a
		}
	}
	return actor.Anonymous()
}
