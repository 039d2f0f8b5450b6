package handlers

import (
	"net/http"

	"marketing-service/internal/models"
	"marketing-service/internal/services"
	"marketing-service/utils"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentService *services.SiteContentService
	middleware     *Middleware
}

func NewContentHandler(contentService *services.SiteContentService, middleware *Middleware) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		middleware:     middleware,
	}
}

func (h *ContentHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	// Published site content feeds the public website without a login.
	public.GET("/contents", h.ListPublished)
	public.GET("/contents/:key", h.GetPublished)

	editors := protected.Group("/contents", h.middleware.RequireRoles(models.ElevatedRoles...))
	editors.GET("", h.ListAll)
	editors.PUT("", h.Upsert)
	editors.DELETE("/:key", h.Delete)
}

func (h *ContentHandler) ListPublished(c *gin.Context) {
	contents, err := h.contentService.GetAllContents(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			utils.CreateErrorResponse("CONTENTS_FETCH_FAILED", "failed to fetch contents"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(contents))
}

func (h *ContentHandler) GetPublished(c *gin.Context) {
	content, err := h.contentService.GetContent(c.Request.Context(), c.Param("key"), c.Query("locale"))
	if err != nil || !content.Published {
		c.JSON(http.StatusNotFound,
			utils.CreateErrorResponse("CONTENT_NOT_FOUND", "content not found"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(content))
}

func (h *ContentHandler) ListAll(c *gin.Context) {
	contents, err := h.contentService.GetAllContents(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			utils.CreateErrorResponse("CONTENTS_FETCH_FAILED", "failed to fetch contents"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(contents))
}

func (h *ContentHandler) Upsert(c *gin.Context) {
	var req models.UpsertSiteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "content key is required"))
		return
	}

	identity := identityFromContext(c)
	content, err := h.contentService.UpsertContent(c.Request.Context(), identity.UserID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("CONTENT_UPSERT_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(content))
}

func (h *ContentHandler) Delete(c *gin.Context) {
	if err := h.contentService.DeleteContent(c.Request.Context(), c.Param("key"), c.Query("locale")); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("CONTENT_DELETE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "content deleted"}))
}
