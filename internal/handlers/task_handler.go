package handlers

import (
	"net/http"

	"marketing-service/internal/models"
	"marketing-service/internal/services"
	"marketing-service/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/projects/:id/tasks", h.ListByProject)
	protected.POST("/projects/:id/tasks", h.Create)
	protected.PUT("/tasks/:id", h.Update)
	protected.DELETE("/tasks/:id", h.Delete)
}

func (h *TaskHandler) Create(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_PROJECT_ID", "invalid project id"))
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "task title is required"))
		return
	}

	identity := identityFromContext(c)
	task, err := h.taskService.CreateTask(c.Request.Context(), identity.UserID, projectID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("TASK_CREATE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(task))
}

func (h *TaskHandler) ListByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_PROJECT_ID", "invalid project id"))
		return
	}

	tasks, err := h.taskService.GetTasksByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			utils.CreateErrorResponse("TASKS_FETCH_FAILED", "failed to fetch tasks"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(tasks))
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_TASK_ID", "invalid task id"))
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "invalid task payload"))
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("TASK_UPDATE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_TASK_ID", "invalid task id"))
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("TASK_DELETE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "task deleted"}))
}
