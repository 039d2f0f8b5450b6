package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"marketing-service/internal/models"
	"marketing-service/internal/services"
	"marketing-service/utils"

	"github.com/gin-gonic/gin"
)

const (
	contextIdentityKey = "identity"
	contextTokenKey    = "token"
)

type Middleware struct {
	authorizer     *services.Authorizer
	sessionService *services.SessionService
}

func NewMiddleware(authorizer *services.Authorizer, sessionService *services.SessionService) *Middleware {
	return &Middleware{
		authorizer:     authorizer,
		sessionService: sessionService,
	}
}

func (m *Middleware) RegisterRoutes(router *gin.Engine) {
	router.GET("/auth/validate", m.ValidateToken)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// RequireAuth verifies the bearer token and its session, then stores the
// caller identity and raw token on the request context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.CreateErrorResponse("MISSING_TOKEN", "authorization header required"))
			return
		}

		identity, err := m.authorizer.Authorize(c.Request.Context(), token)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.CreateErrorResponse("INVALID_TOKEN", "token validation failed"))
			return
		}

		active, err := m.sessionService.HasActiveTokenSession(c.Request.Context(), identity.UserID, token)
		if err != nil {
			log.Printf("Failed to check user session: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				utils.CreateErrorResponse("SESSION_CHECK_FAILED", "failed to check user session"))
			return
		}
		if !active {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.CreateErrorResponse("SESSION_INVALID", "no session found or session invalid"))
			return
		}

		c.Set(contextIdentityKey, identity)
		c.Set(contextTokenKey, token)
		c.Next()
	}
}

// RequireRoles gates a route group to callers holding at least one of the
// given roles. Must run after RequireAuth.
func (m *Middleware) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := identityFromContext(c)
		if identity == nil || !identity.HasAnyRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				utils.CreateErrorResponse("NOT_AUTHORIZED", "insufficient role"))
			return
		}
		c.Next()
	}
}

// ValidateToken backs the gateway's ForwardAuth check.
func (m *Middleware) ValidateToken(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized,
			utils.CreateErrorResponse("MISSING_TOKEN", "authorization header required"))
		return
	}

	identity, err := m.authorizer.Authorize(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized,
			utils.CreateErrorResponse("INVALID_TOKEN", "token validation failed"))
		return
	}

	active, err := m.sessionService.HasActiveTokenSession(c.Request.Context(), identity.UserID, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			utils.CreateErrorResponse("SESSION_CHECK_FAILED", "failed to check user session"))
		return
	}
	if !active {
		c.JSON(http.StatusUnauthorized,
			utils.CreateErrorResponse("SESSION_INVALID", "no session found or session invalid"))
		return
	}

	c.Header("X-User-ID", identity.UserID)
	c.Header("X-User-Email", identity.Email)
	c.JSON(http.StatusOK, utils.SuccessResponse{
		Success: true,
		Data:    nil,
		Meta: &utils.Meta{
			Timestamp: time.Now(),
		},
	})
}

func identityFromContext(c *gin.Context) *models.Identity {
	value, exists := c.Get(contextIdentityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}

func tokenFromContext(c *gin.Context) string {
	return c.GetString(contextTokenKey)
}
