// Package session implements the front-door authorization gate: requests
// must carry a session cookie whose identifier exists in the external
// session store.
package session

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CookieName is the session cookie the upstream application sets.
const CookieName = "connect.sid"

// Gate validates session cookies against a redis-backed store.
type Gate struct {
	rdb    *redis.Client
	prefix string
	log    *zap.Logger
}

// New connects a gate to the session store at host:port. Keys are looked up
// as "<prefix>:<id>".
func New(host, port, prefix string, log *zap.Logger) *Gate {
	return &Gate{
		rdb: redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("%s:%s", host, port),
		}),
		prefix: prefix,
		log:    log,
	}
}

// Middleware rejects requests whose cookie is missing, undecodable, or not
// present in the store. Store connectivity failures are infrastructure
// errors, not authorization failures.
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session cookie"})
			return
		}
		id := SessionID(raw)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed session cookie"})
			return
		}
		n, err := g.rdb.Exists(c.Request.Context(), g.prefix+":"+id).Result()
		if err != nil {
			g.log.Error("session store lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session store unavailable"})
			return
		}
		if n == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		c.Next()
	}
}

// SessionID decodes a connect.sid cookie value: URL-unescape, strip the "s:"
// prefix when present, and drop the trailing dot-delimited signature.
func SessionID(raw string) string {
	value, err := url.QueryUnescape(raw)
	if err != nil {
		value = raw
	}
	value = strings.TrimPrefix(value, "s:")
	if i := strings.IndexByte(value, '.'); i >= 0 {
		value = value[:i]
	}
	return value
}
