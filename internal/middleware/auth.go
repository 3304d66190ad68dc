package middleware

import (
	"net/http"
	"strings"

	"Hey_Blog/internal/auth"
	"Hey_Blog/internal/pkg"
	"Hey_Blog/internal/repository/mysql"
	"Hey_Blog/internal/repository/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const ContextActorKey = "actor"

// Resolver turns a bearer token into an Actor. Tokens are stateless: a valid
// auth-purpose token is sufficient. When the token is the user's stored
// session token the session's sliding TTL is extended as a side effect.
type Resolver struct {
	users    *mysql.UserRepository
	sessions *redis.SessionRepository
	tokens   *pkg.TokenService
}

func NewResolver(db *gorm.DB, tokens *pkg.TokenService) *Resolver {
	return &Resolver{
		users:    &mysql.UserRepository{DB: db},
		sessions: &redis.SessionRepository{},
		tokens:   tokens,
	}
}

func (r *Resolver) resolve(c *gin.Context, tokenStr string) (auth.Actor, bool) {
	userID, err := r.tokens.Verify(tokenStr, pkg.PurposeAuth)
	if err != nil {
		return auth.Anonymous(), false
	}
	user, err := r.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		// subject no longer exists: invalid, not a crash
		return auth.Anonymous(), false
	}
	if stored, err := r.sessions.Get(c.Request.Context(), userID); err == nil && stored == tokenStr {
		_ = r.sessions.Extend(c.Request.Context(), userID)
	}
	_ = r.users.TouchLastSeen(c.Request.Context(), userID)
	return auth.Authenticated(user), true
}

// AuthRequired rejects requests without a valid bearer token.
func (r *Resolver) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED", "msg": "missing or malformed authorization header"})
			return
		}
		actor, ok := r.resolve(c, tokenStr)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED", "msg": "invalid credentials or token"})
			return
		}
		c.Set(ContextActorKey, actor)
		c.Next()
	}
}

// AuthOptional resolves an actor when a token is present and falls back to
// anonymous otherwise. A present-but-invalid token is still rejected.
func (r *Resolver) AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.Set(ContextActorKey, auth.Anonymous())
			c.Next()
			return
		}
		actor, ok := r.resolve(c, tokenStr)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED", "msg": "invalid credentials or token"})
			return
		}
		c.Set(ContextActorKey, actor)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// ActorFromCtx returns the resolved actor, anonymous when none was set.
func ActorFromCtx(c *gin.Context) auth.Actor {
	if v, ok := c.Get(ContextActorKey); ok {
		if actor, ok2 := v.(auth.Actor); ok2 {
			return actor
		}
	}
	return auth.Anonymous()
}
