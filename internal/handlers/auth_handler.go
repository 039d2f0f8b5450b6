package handlers

import (
	"log"
	"net/http"
	"strconv"

	"marketing-service/internal/models"
	"marketing-service/internal/services"
	"marketing-service/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService    services.IUserService
	sessionService *services.SessionService
	roleService    *services.RoleService
	middleware     *Middleware
}

func NewAuthHandler(
	userService services.IUserService,
	sessionService *services.SessionService,
	roleService *services.RoleService,
	middleware *Middleware,
) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		sessionService: sessionService,
		roleService:    roleService,
		middleware:     middleware,
	}
}

func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/auth/login", h.Login)

	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.Me)

	admin := protected.Group("/admin", h.middleware.RequireRoles(models.RoleAdmin))
	admin.POST("/users", h.Register)
	admin.GET("/users", h.ListUsers)
	admin.POST("/users/roles", h.AssignRole)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "email and password are required"))
		return
	}

	deviceInfo := c.GetHeader("User-Agent")
	ipAddress := c.ClientIP()
	user, session, token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password, &deviceInfo, &ipAddress)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Email, err)
		c.JSON(http.StatusUnauthorized,
			utils.CreateErrorResponse("LOGIN_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"token":      token,
		"session_id": session.ID,
		"user": gin.H{
			"id":           user.ID,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"avatar_url":   user.AvatarURL,
		},
	}))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized,
			utils.CreateErrorResponse("INVALID_TOKEN", "token validation failed"))
		return
	}

	if err := h.sessionService.InvalidateUserSessions(c.Request.Context(), identity.UserID); err != nil {
		log.Printf("Failed to invalidate sessions for %s: %v", identity.UserID, err)
		c.JSON(http.StatusInternalServerError,
			utils.CreateErrorResponse("LOGOUT_FAILED", "failed to invalidate sessions"))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "logged out"}))
}

func (h *AuthHandler) Me(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized,
			utils.CreateErrorResponse("INVALID_TOKEN", "token validation failed"))
		return
	}

	user, err := h.userService.GetUserByID(identity.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound,
			utils.CreateErrorResponse("USER_NOT_FOUND", "user not found"))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"avatar_url":   user.AvatarURL,
		"roles":        identity.Roles,
	}))
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "invalid registration payload"))
		return
	}

	user, err := h.userService.RegisterNewUser(req.Email, req.DisplayName, req.Password, req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("REGISTRATION_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
	}))
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.userService.GetAllUsers(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			utils.CreateErrorResponse("USERS_FETCH_FAILED", "failed to fetch users"))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(users))
}

func (h *AuthHandler) AssignRole(c *gin.Context) {
	var req models.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "user_id and role_name are required"))
		return
	}

	identity := identityFromContext(c)
	var assignedBy *string
	if identity != nil {
		assignedBy = &identity.UserID
	}

	if err := h.roleService.AssignRoleToUser(req.UserID, req.RoleName, assignedBy); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("ROLE_ASSIGN_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "role assigned"}))
}
