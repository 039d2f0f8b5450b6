package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"marketing-service/internal/event"
	"marketing-service/internal/models"
	"marketing-service/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoleRepo struct {
	roles map[string][]string
}

func (f *fakeRoleRepo) CreateRole(role *models.Role) error                 { return nil }
func (f *fakeRoleRepo) GetRoleByName(name string) (*models.Role, error)    { return nil, fmt.Errorf("not found") }
func (f *fakeRoleRepo) GetRoles(activeOnly bool) ([]*models.Role, error)   { return nil, nil }
func (f *fakeRoleRepo) AssignRoleToUser(string, int, *string) error        { return nil }
func (f *fakeRoleRepo) RemoveRoleFromUser(userID string, roleID int) error { return nil }
func (f *fakeRoleRepo) GetUserRoleNames(userID string) ([]string, error) {
	return f.roles[userID], nil
}

type fakeActivityRepo struct {
	store      map[uuid.UUID]*models.ProjectActivity
	failAttach bool
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{store: map[uuid.UUID]*models.ProjectActivity{}}
}

func (f *fakeActivityRepo) Create(_ context.Context, activity *models.ProjectActivity) error {
	stored := *activity
	stored.Version = 0
	f.store[activity.ID] = &stored
	return nil
}

func (f *fakeActivityRepo) GetByID(_ context.Context, id uuid.UUID) (*models.ProjectActivity, error) {
	activity, ok := f.store[id]
	if !ok {
		return nil, fmt.Errorf("failed to get activity by id: not found")
	}
	copied := *activity
	return &copied, nil
}

func (f *fakeActivityRepo) GetByProjectID(_ context.Context, projectID uuid.UUID) ([]models.ProjectActivity, error) {
	var activities []models.ProjectActivity
	for _, activity := range f.store {
		if activity.ProjectID == projectID {
			activities = append(activities, *activity)
		}
	}
	return activities, nil
}

func (f *fakeActivityRepo) AttachFile(_ context.Context, id uuid.UUID, fileURL, storagePath string) error {
	if f.failAttach {
		return fmt.Errorf("failed to attach file to activity: db down")
	}
	activity, ok := f.store[id]
	if !ok {
		return fmt.Errorf("activity not found")
	}
	activity.FileURL = &fileURL
	activity.StoragePath = &storagePath
	activity.Type = models.ActivityTypeFileUpload
	return nil
}

func (f *fakeActivityRepo) UpdateStatus(_ context.Context, params repository.StatusUpdateParams) (int64, error) {
	activity, ok := f.store[params.ID]
	if !ok {
		return 0, nil
	}
	if activity.Status != params.FromStatus || activity.Version != params.ExpectedVersion {
		return 0, nil
	}
	activity.Status = params.ToStatus
	activity.Version++
	if params.SetMessage {
		activity.MessageForManager = params.MessageForManager
	}
	if params.SetFeedback {
		activity.ManagerFeedback = params.ManagerFeedback
	}
	return 1, nil
}

func (f *fakeActivityRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.store[id]; !ok {
		return fmt.Errorf("activity not found")
	}
	delete(f.store, id)
	return nil
}

type fakeFileStore struct {
	failUpload bool
	uploaded   []string
	deleted    []string
}

func (f *fakeFileStore) UploadObject(_ context.Context, bucket, objectPath, _ string, reader io.Reader, _ int64) (string, error) {
	if f.failUpload {
		return "", fmt.Errorf("minio unreachable")
	}
	io.Copy(io.Discard, reader)
	f.uploaded = append(f.uploaded, objectPath)
	return "http://minio/" + bucket + "/" + objectPath, nil
}

func (f *fakeFileStore) DeleteObject(_ context.Context, _, objectPath string) error {
	f.deleted = append(f.deleted, objectPath)
	return nil
}

type fakePublisher struct {
	fail   bool
	events []event.ActivityDecisionEvent
}

func (f *fakePublisher) PublishActivityDecision(_ context.Context, e event.ActivityDecisionEvent) error {
	if f.fail {
		return fmt.Errorf("broker unavailable")
	}
	f.events = append(f.events, e)
	return nil
}

type activityFixture struct {
	repo  *fakeActivityRepo
	files *fakeFileStore
	pub   *fakePublisher
	roles *fakeRoleRepo
	jwt   *JWTService
	svc   *ActivityService
}

func newActivityFixture() *activityFixture {
	repo := newFakeActivityRepo()
	files := &fakeFileStore{}
	pub := &fakePublisher{}
	roles := &fakeRoleRepo{roles: map[string][]string{}}
	jwtService := NewJWTService("test-secret")

	return &activityFixture{
		repo:  repo,
		files: files,
		pub:   pub,
		roles: roles,
		jwt:   jwtService,
		svc:   NewActivityService(repo, NewAuthorizer(jwtService, roles), files, "project-files", pub),
	}
}

func (f *activityFixture) tokenFor(t *testing.T, userID, displayName string, roleNames ...string) string {
	t.Helper()
	if len(roleNames) == 0 {
		roleNames = []string{models.RoleEmployee}
	}
	f.roles.roles[userID] = roleNames
	token, err := f.jwt.GenerateNewToken(&models.User{
		ID:          userID,
		Email:       userID + "@example.com",
		DisplayName: displayName,
	})
	require.NoError(t, err)
	return token
}

func TestCreateCommentStartsInDraft(t *testing.T) {
	f := newActivityFixture()
	token := f.tokenFor(t, "U-1", "Deniz")
	projectID := uuid.New()

	activity, err := f.svc.CreateComment(context.Background(), token, projectID, "  kickoff notes  ", false)

	require.NoError(t, err)
	assert.Equal(t, models.ActivityStatusDraft, activity.Status)
	assert.Equal(t, models.ActivityTypeComment, activity.Type)
	assert.Equal(t, "kickoff notes", activity.Content)
	assert.Equal(t, "U-1", activity.UserID)
	assert.Equal(t, 0, activity.Version)
}

func TestCreateCommentInformationEntry(t *testing.T) {
	f := newActivityFixture()
	token := f.tokenFor(t, "U-1", "Deniz")

	activity, err := f.svc.CreateComment(context.Background(), token, uuid.New(), "budget was revised", true)

	require.NoError(t, err)
	assert.Equal(t, models.ActivityStatusInformation, activity.Status)
}

func TestCreateCommentRequiresContent(t *testing.T) {
	f := newActivityFixture()
	token := f.tokenFor(t, "U-1", "Deniz")

	_, err := f.svc.CreateComment(context.Background(), token, uuid.New(), "   ", false)

	assert.Error(t, err)
	assert.Empty(t, f.repo.store)
}

func TestSendForApprovalByAuthor(t *testing.T) {
	f := newActivityFixture()
	token := f.tokenFor(t, "U-1", "Deniz")
	activity, err := f.svc.CreateComment(context.Background(), token, uuid.New(), "draft text", false)
	require.NoError(t, err)

	updated, err := f.svc.SendForApproval(context.Background(), token, activity.ID, "  please review  ", 0)

	require.NoError(t, err)
	assert.Equal(t, models.ActivityStatusPendingApproval, updated.Status)
	require.NotNil(t, updated.MessageForManager)
	assert.Equal(t, "please review", *updated.MessageForManager)
	assert.Equal(t, 1, updated.Version)
}

func TestSendForApprovalRejectsNonAuthor(t *testing.T) {
	f := newActivityFixture()
	authorToken := f.tokenFor(t, "U-1", "Deniz")
	otherToken := f.tokenFor(t, "U-2", "Mert")
	activity, err := f.svc.CreateComment(context.Background(), authorToken, uuid.New(), "draft text", false)
	require.NoError(t, err)

	_, err = f.svc.SendForApproval(context.Background(), otherToken, activity.ID, "", 0)

	assert.ErrorIs(t, err, ErrNotAuthorized)
	stored := f.repo.store[activity.ID]
	assert.Equal(t, models.ActivityStatusDraft, stored.Status)
	assert.Equal(t, 0, stored.Version)
}

func TestSendForApprovalClearsBlankMessage(t *testing.T) {
	f := newActivityFixture()
	token := f.tokenFor(t, "U-1", "Deniz")
	activity, err := f.svc.CreateComment(context.Background(), token, uuid.New(), "draft text", false)
	require.NoError(t, err)

	stale := "previous note"
	f.repo.store[activity.ID].MessageForManager = &stale

	updated, err := f.svc.SendForApproval(context.Background(), token, activity.ID, "   ", 0)

	require.NoError(t, err)
	assert.Nil(t, updated.MessageForManager)
}

func TestSendForApprovalVersionConflict(t *testing.T) {
	f := newActivityFixture()
	token := f.tokenFor(t, "U-1", "Deniz")
	activity, err := f.svc.CreateComment(context.Background(), token, uuid.New(), "draft text", false)
	require.NoError(t, err)

	// Another request already advanced the row.
	f.repo.store[activity.ID].Version = 1

	_, err = f.svc.SendForApproval(context.Background(), token, activity.ID, "", 0)

	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Equal(t, models.ActivityStatusDraft, f.repo.store[activity.ID].Status)
}

func TestSendForApprovalOnlyFromDraft(t *testing.T) {
	f := newActivityFixture()
	token := f.tokenFor(t, "U-1", "Deniz")
	activity, err := f.svc.CreateComment(context.Background(), token, uuid.New(), "note", true)
	require.NoError(t, err)

	_, err = f.svc.SendForApproval(context.Background(), token, activity.ID, "", 0)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApproveRequiresElevatedRole(t *testing.T) {
	f := newActivityFixture()
	authorToken := f.tokenFor(t, "U-1", "Deniz")
	activity, err := f.svc.CreateComment(context.Background(), authorToken, uuid.New(), "draft text", false)
	require.NoError(t, err)
	_, err = f.svc.SendForApproval(context.Background(), authorToken, activity.ID, "", 0)
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), authorToken, activity.ID, "looks fine", 1)

	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, models.ActivityStatusPendingApproval, f.repo.store[activity.ID].Status)
}

func TestApprovePublishesDecision(t *testing.T) {
	f := newActivityFixture()
	authorToken := f.tokenFor(t, "U-1", "Deniz")
	managerToken := f.tokenFor(t, "U-9", "Aylin", models.RoleManager)
	projectID := uuid.New()
	activity, err := f.svc.CreateComment(context.Background(), authorToken, projectID, "draft text", false)
	require.NoError(t, err)
	_, err = f.svc.SendForApproval(context.Background(), authorToken, activity.ID, "", 0)
	require.NoError(t, err)

	updated, err := f.svc.Approve(context.Background(), managerToken, activity.ID, "  good to go  ", 1)

	require.NoError(t, err)
	assert.Equal(t, models.ActivityStatusApproved, updated.Status)
	require.NotNil(t, updated.ManagerFeedback)
	assert.Equal(t, "good to go", *updated.ManagerFeedback)
	assert.Equal(t, 2, updated.Version)

	require.Len(t, f.pub.events, 1)
	published := f.pub.events[0]
	assert.Equal(t, activity.ID.String(), published.ActivityID)
	assert.Equal(t, projectID.String(), published.ProjectID)
	assert.Equal(t, "U-1", published.AuthorID)
	assert.Equal(t, "U-9", published.DecidedBy)
	assert.Equal(t, "approved", published.Decision)
	assert.Equal(t, "good to go", published.ManagerFeedback)
}

func TestRejectStoresFeedback(t *testing.T) {
	f := newActivityFixture()
	authorToken := f.tokenFor(t, "U-1", "Deniz")
	adminToken := f.tokenFor(t, "U-8", "Kerem", models.RoleAdmin)
	activity, err := f.svc.CreateComment(context.Background(), authorToken, uuid.New(), "draft text", false)
	require.NoError(t, err)
	_, err = f.svc.SendForApproval(context.Background(), authorToken, activity.ID, "", 0)
	require.NoError(t, err)

	updated, err := f.svc.Reject(context.Background(), adminToken, activity.ID, "missing the vendor quote", 1)

	require.NoError(t, err)
	assert.Equal(t, models.ActivityStatusRejected, updated.Status)
	require.NotNil(t, updated.ManagerFeedback)
	assert.Equal(t, "missing the vendor quote", *updated.ManagerFeedback)
}

func TestDecideRequiresPendingStatus(t *testing.T) {
	f := newActivityFixture()
	authorToken := f.tokenFor(t, "U-1", "Deniz")
	managerToken := f.tokenFor(t, "U-9", "Aylin", models.RoleManager)
	activity, err := f.svc.CreateComment(context.Background(), authorToken, uuid.New(), "draft text", false)
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), managerToken, activity.ID, "", 0)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDecideVersionConflict(t *testing.T) {
	f := newActivityFixture()
	authorToken := f.tokenFor(t, "U-1", "Deniz")
	managerToken := f.tokenFor(t, "U-9", "Aylin", models.RoleManager)
	activity, err := f.svc.CreateComment(context.Background(), authorToken, uuid.New(), "draft text", false)
	require.NoError(t, err)
	_, err = f.svc.SendForApproval(context.Background(), authorToken, activity.ID, "", 0)
	require.NoError(t, err)

	// Stale read: the caller still holds version 0.
	_, err = f.svc.Approve(context.Background(), managerToken, activity.ID, "", 0)

	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Empty(t, f.pub.events)
}

func TestDecisionSurvivesPublishFailure(t *testing.T) {
	f := newActivityFixture()
	f.pub.fail = true
	authorToken := f.tokenFor(t, "U-1", "Deniz")
	managerToken := f.tokenFor(t, "U-9", "Aylin", models.RoleManager)
	activity, err := f.svc.CreateComment(context.Background(), authorToken, uuid.New(), "draft text", false)
	require.NoError(t, err)
	_, err = f.svc.SendForApproval(context.Background(), authorToken, activity.ID, "", 0)
	require.NoError(t, err)

	updated, err := f.svc.Approve(context.Background(), managerToken, activity.ID, "", 1)

	require.NoError(t, err)
	assert.Equal(t, models.ActivityStatusApproved, updated.Status)
}

func TestCreateFileActivityTwoPhase(t *testing.T) {
	f := newActivityFixture()
	token := f.tokenFor(t, "U-1", "Deniz")
	projectID := uuid.New()

	activity, err := f.svc.CreateFileActivity(context.Background(), token, projectID, "brochure draft", FileUpload{
		Name:        "Brochure V2.pdf",
		ContentType: "application/pdf",
		Reader:      bytes.NewReader([]byte("%PDF-")),
		Size:        5,
	})

	require.NoError(t, err)
	assert.Equal(t, models.ActivityTypeFileUpload, activity.Type)
	assert.Equal(t, models.ActivityStatusDraft, activity.Status)
	require.NotNil(t, activity.FileURL)
	require.NotNil(t, activity.StoragePath)
	assert.Contains(t, *activity.StoragePath, "projects/"+projectID.String())
	require.Len(t, f.files.uploaded, 1)
}

func TestCreateFileActivityUploadFailureCompensates(t *testing.T) {
	f := newActivityFixture()
	f.files.failUpload = true
	token := f.tokenFor(t, "U-1", "Deniz")

	_, err := f.svc.CreateFileActivity(context.Background(), token, uuid.New(), "", FileUpload{
		Name:   "photo.jpg",
		Reader: bytes.NewReader([]byte("jpg")),
		Size:   3,
	})

	require.Error(t, err)
	// The preliminary draft row must not survive a failed upload.
	assert.Empty(t, f.repo.store)
}

func TestCreateFileActivityAttachFailureCleansUp(t *testing.T) {
	f := newActivityFixture()
	f.repo.failAttach = true
	token := f.tokenFor(t, "U-1", "Deniz")

	_, err := f.svc.CreateFileActivity(context.Background(), token, uuid.New(), "", FileUpload{
		Name:   "photo.jpg",
		Reader: bytes.NewReader([]byte("jpg")),
		Size:   3,
	})

	require.Error(t, err)
	assert.Empty(t, f.repo.store)
	// The already-uploaded object is removed as well.
	require.Len(t, f.files.deleted, 1)
	assert.Equal(t, f.files.uploaded[0], f.files.deleted[0])
}

func TestListByProjectVisibility(t *testing.T) {
	f := newActivityFixture()
	authorToken := f.tokenFor(t, "U-1", "Deniz")
	otherToken := f.tokenFor(t, "U-2", "Mert")
	managerToken := f.tokenFor(t, "U-9", "Aylin", models.RoleManager)
	projectID := uuid.New()

	draft, err := f.svc.CreateComment(context.Background(), authorToken, projectID, "my draft", false)
	require.NoError(t, err)
	pending, err := f.svc.CreateComment(context.Background(), authorToken, projectID, "awaiting review", false)
	require.NoError(t, err)
	_, err = f.svc.SendForApproval(context.Background(), authorToken, pending.ID, "", 0)
	require.NoError(t, err)
	info, err := f.svc.CreateComment(context.Background(), otherToken, projectID, "fyi", true)
	require.NoError(t, err)

	authorView, err := f.svc.ListByProject(context.Background(), authorToken, projectID)
	require.NoError(t, err)
	assert.Len(t, authorView, 3)

	otherView, err := f.svc.ListByProject(context.Background(), otherToken, projectID)
	require.NoError(t, err)
	require.Len(t, otherView, 1)
	assert.Equal(t, info.ID, otherView[0].ID)

	managerView, err := f.svc.ListByProject(context.Background(), managerToken, projectID)
	require.NoError(t, err)
	assert.Len(t, managerView, 2)
	for _, a := range managerView {
		assert.NotEqual(t, draft.ID, a.ID, "another user's draft must stay hidden even from managers")
	}
}

func TestGetByIDDraftVisibleOnlyToAuthor(t *testing.T) {
	f := newActivityFixture()
	authorToken := f.tokenFor(t, "U-1", "Deniz")
	managerToken := f.tokenFor(t, "U-9", "Aylin", models.RoleManager)
	draft, err := f.svc.CreateComment(context.Background(), authorToken, uuid.New(), "my draft", false)
	require.NoError(t, err)

	got, err := f.svc.GetByID(context.Background(), authorToken, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	_, err = f.svc.GetByID(context.Background(), managerToken, draft.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}
