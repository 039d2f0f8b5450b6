package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"marketing-service/internal/models"
	"marketing-service/internal/services"
	"marketing-service/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/projects/:id/activities", h.ListByProject)
	protected.POST("/projects/:id/activities", h.Create)
	protected.GET("/activities/:id", h.GetByID)
	protected.POST("/activities/:id/send-for-approval", h.SendForApproval)
	protected.POST("/activities/:id/approve", h.Approve)
	protected.POST("/activities/:id/reject", h.Reject)
}

// writeWorkflowError maps the approval workflow's sentinel errors onto
// distinct status codes so clients can tell a permission problem from a stale
// read from an illegal transition.
func writeWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthorized):
		c.JSON(http.StatusForbidden,
			utils.CreateErrorResponse("NOT_AUTHORIZED", err.Error()))
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict,
			utils.CreateErrorResponse("INVALID_TRANSITION", err.Error()))
	case errors.Is(err, services.ErrVersionConflict):
		c.JSON(http.StatusConflict,
			utils.CreateErrorResponse("VERSION_CONFLICT", err.Error()))
	default:
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("ACTIVITY_OPERATION_FAILED", err.Error()))
	}
}

// Create accepts either a JSON comment payload or a multipart form carrying a
// file plus an optional comment.
func (h *ActivityHandler) Create(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_PROJECT_ID", "invalid project id"))
		return
	}
	token := tokenFromContext(c)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.createWithFile(c, token, projectID)
		return
	}

	var req models.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "invalid activity payload"))
		return
	}

	activity, err := h.activityService.CreateComment(c.Request.Context(), token, projectID, req.Content, req.Information)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(activity))
}

func (h *ActivityHandler) createWithFile(c *gin.Context, token string, projectID uuid.UUID) {
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

	activity, err := h.activityService.CreateFileActivity(c.Request.Context(), token, projectID, c.PostForm("content"), services.FileUpload{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Reader:      file,
		Size:        fileHeader.Size,
	})
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(activity))
}

func (h *ActivityHandler) ListByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_PROJECT_ID", "invalid project id"))
		return
	}

	activities, err := h.activityService.ListByProject(c.Request.Context(), tokenFromContext(c), projectID)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(activities))
}

func (h *ActivityHandler) GetByID(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_ACTIVITY_ID", "invalid activity id"))
		return
	}

	activity, err := h.activityService.GetByID(c.Request.Context(), tokenFromContext(c), activityID)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(activity))
}

func (h *ActivityHandler) SendForApproval(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_ACTIVITY_ID", "invalid activity id"))
		return
	}

	var req models.SendForApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "invalid approval payload"))
		return
	}

	activity, err := h.activityService.SendForApproval(c.Request.Context(), tokenFromContext(c), activityID, req.MessageForManager, req.Version)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(activity))
}

func (h *ActivityHandler) Approve(c *gin.Context) {
	h.decide(c, h.activityService.Approve)
}

func (h *ActivityHandler) Reject(c *gin.Context) {
	h.decide(c, h.activityService.Reject)
}

type decideFunc func(ctx context.Context, token string, activityID uuid.UUID, feedback string, expectedVersion int) (*models.ProjectActivity, error)

func (h *ActivityHandler) decide(c *gin.Context, fn decideFunc) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_ACTIVITY_ID", "invalid activity id"))
		return
	}

	var req models.DecideActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "invalid decision payload"))
		return
	}

	activity, err := fn(c.Request.Context(), tokenFromContext(c), activityID, req.ManagerFeedback, req.Version)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(activity))
}
