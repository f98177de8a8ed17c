package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pensacomp/lms-service/internal/auth"
	"github.com/pensacomp/lms-service/internal/cache"
	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
	"github.com/pensacomp/lms-service/internal/utils"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"

	userContextKey   = "user"
	userIDContextKey = "user_id"
)

// AuthMiddleware authenticates requests: access token from the cookie (or
// Authorization header as fallback), then the session mirror. A valid token
// whose session was revoked or expired is rejected.
type AuthMiddleware struct {
	tokens   *auth.TokenManager
	sessions *cache.SessionStore
	users    repositories.UserRepository
	logger   utils.Logger
}

func NewAuthMiddleware(tokens *auth.TokenManager, sessions *cache.SessionStore, users repositories.UserRepository, logger utils.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		sessions: sessions,
		users:    users,
		logger:   logger,
	}
}

// RequireAuth aborts with 401 unless the request carries a valid access
// token backed by a live session.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			m.abort(c, "Faça login para acessar este recurso")
			return
		}

		userID, err := m.tokens.VerifyAccessToken(token)
		if err != nil {
			m.abort(c, "Token inválido ou expirado")
			return
		}

		user, err := m.resolveUser(c, userID)
		if err != nil {
			m.abort(c, "Sessão expirada, faça login novamente")
			return
		}

		c.Set(userContextKey, user)
		c.Set(userIDContextKey, user.ID)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user has the role.
// Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFromContext(c)
		if user == nil || user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Você não tem permissão para acessar este recurso",
			})
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// resolveUser reads the session mirror, falling back to the database only
// when no mirror is configured.
func (m *AuthMiddleware) resolveUser(c *gin.Context, userID uint) (*models.User, error) {
	user, err := m.sessions.Get(c.Request.Context(), userID)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, cache.ErrCacheNotAvailable) {
		return m.users.GetByID(c.Request.Context(), userID)
	}
	return nil, err
}

func (m *AuthMiddleware) abort(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: message})
}

// UserFromContext returns the authenticated user set by RequireAuth.
func UserFromContext(c *gin.Context) *models.User {
	if v, exists := c.Get(userContextKey); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
