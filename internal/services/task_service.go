package services

import (
	"context"
	"fmt"

	"marketing-service/internal/models"
	"marketing-service/internal/repository"

	"github.com/google/uuid"
)

type TaskService struct {
	taskRepo    *repository.TaskRepository
	projectRepo *repository.ProjectRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, projectRepo *repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, creatorID string, projectID uuid.UUID, req models.CreateTaskRequest) (*models.Task, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("task title cannot be empty")
	}

	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("project not found")
	}

	task := &models.Task{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Title:      req.Title,
		Detail:     req.Detail,
		Status:     models.TaskStatusTodo,
		Priority:   req.Priority,
		DueDate:    req.DueDate,
		AssigneeID: req.AssigneeID,
		CreatedBy:  creatorID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetTasksByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	return s.taskRepo.GetByProjectID(ctx, projectID)
}

func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req models.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Detail != nil {
		task.Detail = *req.Detail
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		switch status {
		case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone:
			task.Status = status
		default:
			return nil, fmt.Errorf("invalid task status: %s", *req.Status)
		}
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return s.taskRepo.Delete(ctx, id)
}
