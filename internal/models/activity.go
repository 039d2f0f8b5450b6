package models

import (
	"time"

	"github.com/google/uuid"
)

type ActivityStatus string

const (
	ActivityStatusDraft           ActivityStatus = "draft"
	ActivityStatusPendingApproval ActivityStatus = "pending_approval"
	ActivityStatusApproved        ActivityStatus = "approved"
	ActivityStatusRejected        ActivityStatus = "rejected"
	// ActivityStatusInformation marks entries created outside the approval
	// flow; no transition is defined for them.
	ActivityStatusInformation ActivityStatus = "information"
)

type ActivityType string

const (
	ActivityTypeComment    ActivityType = "comment"
	ActivityTypeFileUpload ActivityType = "file_upload"
)

type ProjectActivity struct {
	ID                uuid.UUID      `json:"id" db:"id"`
	ProjectID         uuid.UUID      `json:"project_id" db:"project_id"`
	UserID            string         `json:"user_id" db:"user_id"`
	UserDisplayName   string         `json:"user_display_name" db:"user_display_name"`
	UserAvatarURL     *string        `json:"user_avatar_url" db:"user_avatar_url"`
	Type              ActivityType   `json:"type" db:"type"`
	Content           string         `json:"content" db:"content"`
	FileName          *string        `json:"file_name" db:"file_name"`
	FileType          *string        `json:"file_type" db:"file_type"`
	FileURL           *string        `json:"file_url" db:"file_url"`
	StoragePath       *string        `json:"storage_path" db:"storage_path"`
	Status            ActivityStatus `json:"status" db:"status"`
	MessageForManager *string        `json:"message_for_manager" db:"message_for_manager"`
	ManagerFeedback   *string        `json:"manager_feedback" db:"manager_feedback"`
	// Version guards concurrent transitions: every status update must carry
	// the version it read, and bumps it by one on success.
	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateActivityRequest struct {
	Content     string `json:"content"`
	Information bool   `json:"information"`
}

type SendForApprovalRequest struct {
	MessageForManager string `json:"message_for_manager"`
	Version           int    `json:"version"`
}

type DecideActivityRequest struct {
	ManagerFeedback string `json:"manager_feedback"`
	Version         int    `json:"version"`
}
