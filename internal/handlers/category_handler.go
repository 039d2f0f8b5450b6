package handlers

import (
	"net/http"

	"marketing-service/internal/models"
	"marketing-service/internal/services"
	"marketing-service/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	middleware      *Middleware
}

func NewCategoryHandler(categoryService *services.CategoryService, middleware *Middleware) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		middleware:      middleware,
	}
}

func (h *CategoryHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/categories", h.List)
	protected.POST("/categories", h.middleware.RequireRoles(models.ElevatedRoles...), h.Create)
	protected.DELETE("/categories/:id", h.middleware.RequireRoles(models.ElevatedRoles...), h.Delete)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "category name is required"))
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("CATEGORY_CREATE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(category))
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.GetAllCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			utils.CreateErrorResponse("CATEGORIES_FETCH_FAILED", "failed to fetch categories"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(categories))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_CATEGORY_ID", "invalid category id"))
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("CATEGORY_DELETE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "category deleted"}))
}
