package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"marketing-service/internal/event"
	"marketing-service/internal/models"
	"marketing-service/internal/repository"
	"marketing-service/utils"

	"github.com/google/uuid"
)

var (
	// ErrInvalidTransition marks an attempt to move an activity out of a
	// state that does not allow it (e.g. approving a draft).
	ErrInvalidTransition = errors.New("invalid activity transition")
	// ErrVersionConflict marks a transition that lost a race: the record
	// changed since the caller read it.
	ErrVersionConflict = errors.New("activity was modified concurrently")
)

// ActivityFileStore is the slice of blob storage the activity workflow needs.
type ActivityFileStore interface {
	UploadObject(ctx context.Context, bucket, objectPath, contentType string, reader io.Reader, size int64) (string, error)
	DeleteObject(ctx context.Context, bucket, objectPath string) error
}

// DecisionPublisher notifies the activity author about a manager decision.
type DecisionPublisher interface {
	PublishActivityDecision(ctx context.Context, event event.ActivityDecisionEvent) error
}

// FileUpload carries the binary content of an attachment-backed activity.
type FileUpload struct {
	Name        string
	ContentType string
	Reader      io.Reader
	Size        int64
}

// ActivityService implements the approval workflow for project activities:
// draft -> pending_approval -> approved/rejected, with information entries
// living outside the flow. Every transition re-verifies the caller through
// the shared Authorizer before mutating.
type ActivityService struct {
	activityRepo repository.IActivityRepository
	authorizer   *Authorizer
	fileStore    ActivityFileStore
	fileBucket   string
	publisher    DecisionPublisher
}

func NewActivityService(
	activityRepo repository.IActivityRepository,
	authorizer *Authorizer,
	fileStore ActivityFileStore,
	fileBucket string,
	publisher DecisionPublisher,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		authorizer:   authorizer,
		fileStore:    fileStore,
		fileBucket:   fileBucket,
		publisher:    publisher,
	}
}

// CreateComment creates a text-only activity in draft, or as an information
// entry when requested. An activity must carry a comment, a file, or both.
func (s *ActivityService) CreateComment(ctx context.Context, token string, projectID uuid.UUID, content string, information bool) (*models.ProjectActivity, error) {
	caller, err := s.authorizer.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("activity must carry a comment or a file")
	}

	status := models.ActivityStatusDraft
	if information {
		status = models.ActivityStatusInformation
	}

	activity := &models.ProjectActivity{
		ID:              uuid.New(),
		ProjectID:       projectID,
		UserID:          caller.UserID,
		UserDisplayName: caller.DisplayName,
		UserAvatarURL:   caller.AvatarURL,
		Type:            models.ActivityTypeComment,
		Content:         content,
		Status:          status,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// CreateFileActivity runs the two-phase attachment creation: a draft row with
// file metadata first, then the upload, then the row update with the public
// URL. A failure in either later phase deletes the preliminary row so no
// orphaned draft is left behind.
func (s *ActivityService) CreateFileActivity(ctx context.Context, token string, projectID uuid.UUID, content string, upload FileUpload) (*models.ProjectActivity, error) {
	caller, err := s.authorizer.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}

	if upload.Reader == nil || upload.Name == "" {
		return nil, fmt.Errorf("file upload requires a name and content")
	}

	fileName := utils.SafeFileName(upload.Name)
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	activity := &models.ProjectActivity{
		ID:              uuid.New(),
		ProjectID:       projectID,
		UserID:          caller.UserID,
		UserDisplayName: caller.DisplayName,
		UserAvatarURL:   caller.AvatarURL,
		Type:            models.ActivityTypeFileUpload,
		Content:         strings.TrimSpace(content),
		FileName:        &fileName,
		FileType:        &contentType,
		Status:          models.ActivityStatusDraft,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}

	objectPath := fmt.Sprintf("projects/%s/activities/%s/%s", projectID, activity.ID, fileName)
	fileURL, err := s.fileStore.UploadObject(ctx, s.fileBucket, objectPath, contentType, upload.Reader, upload.Size)
	if err != nil {
		s.compensateCreate(ctx, activity.ID)
		return nil, fmt.Errorf("failed to upload activity file: %w", err)
	}

	if err := s.activityRepo.AttachFile(ctx, activity.ID, fileURL, objectPath); err != nil {
		if delErr := s.fileStore.DeleteObject(ctx, s.fileBucket, objectPath); delErr != nil {
			slog.Error("failed to remove uploaded file after attach failure", "path", objectPath, "error", delErr)
		}
		s.compensateCreate(ctx, activity.ID)
		return nil, fmt.Errorf("failed to finalize activity file: %w", err)
	}

	activity.FileURL = &fileURL
	activity.StoragePath = &objectPath
	return activity, nil
}

// compensateCreate removes the preliminary draft row of a failed two-phase
// creation.
func (s *ActivityService) compensateCreate(ctx context.Context, id uuid.UUID) {
	if err := s.activityRepo.Delete(ctx, id); err != nil {
		slog.Error("failed to delete preliminary activity after upload failure", "activity_id", id, "error", err)
	}
}

// SendForApproval moves the caller's own draft to pending_approval. The
// manager message is stored trimmed, or cleared when blank.
func (s *ActivityService) SendForApproval(ctx context.Context, token string, activityID uuid.UUID, message string, expectedVersion int) (*models.ProjectActivity, error) {
	caller, err := s.authorizer.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.UserID != caller.UserID {
		return nil, fmt.Errorf("%w: only the author may submit a draft for approval", ErrNotAuthorized)
	}
	if activity.Status != models.ActivityStatusDraft {
		return nil, fmt.Errorf("%w: cannot submit activity in status %s", ErrInvalidTransition, activity.Status)
	}

	rows, err := s.activityRepo.UpdateStatus(ctx, repository.StatusUpdateParams{
		ID:                activityID,
		FromStatus:        models.ActivityStatusDraft,
		ToStatus:          models.ActivityStatusPendingApproval,
		ExpectedVersion:   expectedVersion,
		MessageForManager: utils.TrimOrNil(message),
		SetMessage:        true,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrVersionConflict
	}

	return s.activityRepo.GetByID(ctx, activityID)
}

// Approve moves a pending activity to approved. Elevated roles only.
func (s *ActivityService) Approve(ctx context.Context, token string, activityID uuid.UUID, feedback string, expectedVersion int) (*models.ProjectActivity, error) {
	return s.decide(ctx, token, activityID, models.ActivityStatusApproved, feedback, expectedVersion)
}

// Reject moves a pending activity to rejected. Elevated roles only.
func (s *ActivityService) Reject(ctx context.Context, token string, activityID uuid.UUID, feedback string, expectedVersion int) (*models.ProjectActivity, error) {
	return s.decide(ctx, token, activityID, models.ActivityStatusRejected, feedback, expectedVersion)
}

func (s *ActivityService) decide(ctx context.Context, token string, activityID uuid.UUID, decision models.ActivityStatus, feedback string, expectedVersion int) (*models.ProjectActivity, error) {
	caller, err := s.authorizer.Authorize(ctx, token, models.ElevatedRoles...)
	if err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.Status != models.ActivityStatusPendingApproval {
		return nil, fmt.Errorf("%w: cannot decide activity in status %s", ErrInvalidTransition, activity.Status)
	}

	rows, err := s.activityRepo.UpdateStatus(ctx, repository.StatusUpdateParams{
		ID:              activityID,
		FromStatus:      models.ActivityStatusPendingApproval,
		ToStatus:        decision,
		ExpectedVersion: expectedVersion,
		ManagerFeedback: utils.TrimOrNil(feedback),
		SetFeedback:     true,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrVersionConflict
	}

	updated, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		feedbackValue := ""
		if updated.ManagerFeedback != nil {
			feedbackValue = *updated.ManagerFeedback
		}
		err := s.publisher.PublishActivityDecision(ctx, event.ActivityDecisionEvent{
			ActivityID:      updated.ID.String(),
			ProjectID:       updated.ProjectID.String(),
			AuthorID:        updated.UserID,
			DecidedBy:       caller.UserID,
			Decision:        string(decision),
			ManagerFeedback: feedbackValue,
		})
		if err != nil {
			// The transition already committed; notification delivery is
			// best effort.
			slog.Error("failed to publish activity decision", "activity_id", activityID, "error", err)
		}
	}

	return updated, nil
}

// ListByProject returns the project's activities visible to the caller:
// drafts only to their author, pending submissions to the author and to
// elevated roles, everything else to everyone.
func (s *ActivityService) ListByProject(ctx context.Context, token string, projectID uuid.UUID) ([]models.ProjectActivity, error) {
	caller, err := s.authorizer.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	elevated := caller.HasAnyRole(models.ElevatedRoles...)
	visible := make([]models.ProjectActivity, 0, len(activities))
	for _, activity := range activities {
		switch activity.Status {
		case models.ActivityStatusDraft:
			if activity.UserID == caller.UserID {
				visible = append(visible, activity)
			}
		case models.ActivityStatusPendingApproval:
			if activity.UserID == caller.UserID || elevated {
				visible = append(visible, activity)
			}
		default:
			visible = append(visible, activity)
		}
	}
	return visible, nil
}

func (s *ActivityService) GetByID(ctx context.Context, token string, activityID uuid.UUID) (*models.ProjectActivity, error) {
	caller, err := s.authorizer.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}

	switch activity.Status {
	case models.ActivityStatusDraft:
		if activity.UserID != caller.UserID {
			return nil, fmt.Errorf("%w: draft is visible only to its author", ErrNotAuthorized)
		}
	case models.ActivityStatusPendingApproval:
		if activity.UserID != caller.UserID && !caller.HasAnyRole(models.ElevatedRoles...) {
			return nil, fmt.Errorf("%w: pending activity is visible to its author and managers", ErrNotAuthorized)
		}
	}
	return activity, nil
}
