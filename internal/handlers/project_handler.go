package handlers

import (
	"net/http"

	"marketing-service/internal/models"
	"marketing-service/internal/services"
	"marketing-service/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	middleware     *Middleware
}

func NewProjectHandler(projectService *services.ProjectService, middleware *Middleware) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		middleware:     middleware,
	}
}

func (h *ProjectHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/projects", h.List)
	protected.GET("/projects/:id", h.Get)
	protected.GET("/projects/:id/budget", h.BudgetSummary)
	protected.POST("/projects", h.Create)
	protected.PUT("/projects/:id", h.Update)
	protected.POST("/projects/:id/cover", h.UploadCover)
	protected.DELETE("/projects/:id", h.middleware.RequireRoles(models.ElevatedRoles...), h.Delete)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "project name is required"))
		return
	}

	identity := identityFromContext(c)
	project, err := h.projectService.CreateProject(c.Request.Context(), identity.UserID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("PROJECT_CREATE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(project))
}

func (h *ProjectHandler) List(c *gin.Context) {
	filters := map[string]interface{}{}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		filters["category_id"] = categoryID
	}

	projects, err := h.projectService.GetAllProjects(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			utils.CreateErrorResponse("PROJECTS_FETCH_FAILED", "failed to fetch projects"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(projects))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_PROJECT_ID", "invalid project id"))
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound,
			utils.CreateErrorResponse("PROJECT_NOT_FOUND", "project not found"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(project))
}

func (h *ProjectHandler) BudgetSummary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_PROJECT_ID", "invalid project id"))
		return
	}

	summary, err := h.projectService.GetBudgetSummary(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound,
			utils.CreateErrorResponse("PROJECT_NOT_FOUND", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(summary))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_PROJECT_ID", "invalid project id"))
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "invalid project payload"))
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("PROJECT_UPDATE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(project))
}

func (h *ProjectHandler) UploadCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_PROJECT_ID", "invalid project id"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("MISSING_FILE", "multipart request must carry a file field"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_FILE", "failed to open uploaded file"))
		return
	}
	defer file.Close()

	project, err := h.projectService.UploadCoverImage(c.Request.Context(), id,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("COVER_UPLOAD_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_PROJECT_ID", "invalid project id"))
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("PROJECT_DELETE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "project deleted"}))
}
