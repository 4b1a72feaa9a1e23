package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"teamvault_backend/internal/models"
	"teamvault_backend/internal/services/dto"
	"teamvault_backend/internal/types"
	"teamvault_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type groupFixture struct {
	groupRepo   *fakeGroupRepo
	profileRepo *fakeProfileRepo
	userRepo    *fakeUserRepo
	store       *fakeStorage
	svc         GroupService

	owner  *models.Profile
	editor *models.Profile
	member *models.Profile
	admin  *models.Profile
}

func newGroupFixture() *groupFixture {
	f := &groupFixture{
		groupRepo:   newFakeGroupRepo(),
		profileRepo: newFakeProfileRepo(),
		userRepo:    newFakeUserRepo(),
		store:       newFakeStorage(),
	}
	f.svc = NewGroupService(f.groupRepo, f.profileRepo, f.userRepo, f.store, time.Hour)

	f.owner = f.profileRepo.add(&models.Profile{ID: "owner-1", Role: models.ProfileRoleUploader, DisplayName: strPtr("Olive")})
	f.editor = f.profileRepo.add(&models.Profile{ID: "editor-1", Role: models.ProfileRoleMember, DisplayName: strPtr("Ed")})
	f.member = f.profileRepo.add(&models.Profile{ID: "member-1", Role: models.ProfileRoleMember, DisplayName: strPtr("Mia")})
	f.admin = f.profileRepo.add(&models.Profile{ID: "admin-1", Role: models.ProfileRoleAdmin, DisplayName: strPtr("Ada")})

	f.userRepo.add("owner-1", "olive@team.org")
	f.userRepo.add("editor-1", "ed@team.org")
	f.userRepo.add("member-1", "mia@team.org")
	f.userRepo.add("admin-1", "ada@team.org")

	return f
}

func (f *groupFixture) addGroup(id, title string, editors ...string) *models.UploadGroup {
	g := &models.UploadGroup{
		ID:         id,
		UploaderID: "owner-1",
		Title:      title,
		Editors:    editors,
		CreatedAt:  time.Now(),
	}
	_ = f.groupRepo.Create(g)
	return g
}

func TestList_PaginatesAtTwenty(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	base := time.Now()
	for i := 0; i < 25; i++ {
		g := f.addGroup(fmt.Sprintf("g-%02d", i), fmt.Sprintf("Group %02d", i))
		g.CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}

	query := types.NewListQuery()
	resp, err := f.svc.List(f.member, query)
	require.NoError(t, err)

	assert.Len(t, resp.Groups, 20)
	assert.Equal(t, int64(25), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 1, resp.Page)
	// Newest first by default.
	assert.Equal(t, "g-24", resp.Groups[0].ID)

	query.SetPage(2)
	resp, err = f.svc.List(f.member, query)
	require.NoError(t, err)
	assert.Len(t, resp.Groups, 5)
	assert.Equal(t, 2, resp.Page)
}

func TestList_AttachesViewerCapabilities(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	f.addGroup("g-1", "Shared", "editor-1")

	for _, tc := range []struct {
		viewer  *models.Profile
		canEdit bool
		manage  bool
	}{
		{f.owner, true, true},
		{f.editor, true, false},
		{f.member, false, false},
		{f.admin, true, true},
	} {
		resp, err := f.svc.List(tc.viewer, types.NewListQuery())
		require.NoError(t, err)
		require.Len(t, resp.Groups, 1)
		cap := resp.Groups[0].Capability
		assert.Equal(t, tc.canEdit, cap.CanEdit, tc.viewer.ID)
		assert.Equal(t, tc.manage, cap.CanManageEditors, tc.viewer.ID)
	}
}

func TestList_FiltersBySearchAndTag(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	g1 := f.addGroup("g-1", "Robot assembly photos")
	g1.Tags = []string{"photos", "build"}
	g2 := f.addGroup("g-2", "Budget spreadsheet")
	g2.Notes = strPtr("robot costs for the season")
	f.addGroup("g-3", "Outreach flyer")

	query := types.NewListQuery()
	query.SetSearch("robot")
	resp, err := f.svc.List(f.member, query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalCount)

	query = types.NewListQuery()
	query.SetTag("build")
	resp, err = f.svc.List(f.member, query)
	require.NoError(t, err)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "g-1", resp.Groups[0].ID)
}

func TestGetDetail_SignsFileURLs(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	g := f.addGroup("g-1", "With files")
	g.Files = []models.UploadFile{
		{ID: "f-1", GroupID: "g-1", OriginalFilename: "a.png", StoragePath: "raw/key-a", Position: 0},
		{ID: "f-2", GroupID: "g-1", OriginalFilename: "b.png", StoragePath: "raw/key-b", Position: 1},
	}

	detail, err := f.svc.GetDetail(context.Background(), f.member, "g-1")
	require.NoError(t, err)
	require.Len(t, detail.Files, 2)
	assert.Equal(t, "https://signed.example/raw/key-a", detail.Files[0].URL)
	require.NotNil(t, detail.Uploader)
	assert.Equal(t, "owner-1", detail.Uploader.ID)
}

func TestGetDetail_ListsFileWithoutURLOnSigningFailure(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	f.store.signErr = assert.AnError
	g := f.addGroup("g-1", "With files")
	g.Files = []models.UploadFile{
		{ID: "f-1", GroupID: "g-1", OriginalFilename: "a.png", StoragePath: "raw/key-a", Position: 0},
	}

	detail, err := f.svc.GetDetail(context.Background(), f.member, "g-1")
	require.NoError(t, err)
	require.Len(t, detail.Files, 1)
	assert.Empty(t, detail.Files[0].URL)
}

func TestGetForEdit_MasksForbiddenAsNotFound(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	f.addGroup("g-1", "Private", "editor-1")

	_, err := f.svc.GetForEdit(f.member, "g-1")
	assert.True(t, apperrors.Is(err, apperrors.ErrGroupNotFound))

	payload, err := f.svc.GetForEdit(f.editor, "g-1")
	require.NoError(t, err)
	assert.True(t, payload.Capability.CanEdit)
	assert.False(t, payload.Capability.CanManageEditors)
}

func TestUpdate_RechecksCapabilityAtMutationTime(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	f.addGroup("g-1", "Old title", "editor-1")

	payload, err := f.svc.Update(f.editor, "g-1", &dto.UpdateGroupRequest{Title: strPtr("New title")})
	require.NoError(t, err)
	assert.Equal(t, "New title", payload.Title)

	_, err = f.svc.Update(f.member, "g-1", &dto.UpdateGroupRequest{Title: strPtr("Nope")})
	assert.True(t, apperrors.Is(err, apperrors.ErrGroupNotFound))
}

func TestUpdate_EditorCannotTouchEditorList(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	f.addGroup("g-1", "Shared", "editor-1")

	_, err := f.svc.Update(f.editor, "g-1", &dto.UpdateGroupRequest{
		Editors: &[]string{"editor-1", "member-1"},
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestUpdate_StripsOwnerFromEditors(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	f.addGroup("g-1", "Shared")

	payload, err := f.svc.Update(f.owner, "g-1", &dto.UpdateGroupRequest{
		Editors: &[]string{"owner-1", "editor-1"},
	})
	require.NoError(t, err)
	require.Len(t, payload.Editors, 1)
	assert.Equal(t, "editor-1", payload.Editors[0].ID)
}

func TestUpdate_TagsRoundTrip(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	g := f.addGroup("g-1", "Tagged")
	g.Tags = []string{"old"}

	payload, err := f.svc.Update(f.owner, "g-1", &dto.UpdateGroupRequest{
		Tags: &[]string{"x", "y"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, payload.Tags)

	// Reloading returns exactly the saved set.
	payload, err = f.svc.GetForEdit(f.owner, "g-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, payload.Tags)

	// Duplicates and blanks never reach the stored set.
	payload, err = f.svc.Update(f.owner, "g-1", &dto.UpdateGroupRequest{
		Tags: &[]string{"x", "x", " ", "y "},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, payload.Tags)
}

func TestUpdate_ZeroRowWriteBecomesPermissionError(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	f.addGroup("g-1", "Shared")
	f.groupRepo.zeroRows = true

	_, err := f.svc.Update(f.owner, "g-1", &dto.UpdateGroupRequest{Title: strPtr("X")})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
	assert.Contains(t, appErr.Message, "permission")
}

func TestAddEditor_ResolvesEmailAndAppends(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	f.addGroup("g-1", "Shared")

	payload, err := f.svc.AddEditor(f.owner, "g-1", "mia@team.org")
	require.NoError(t, err)
	require.Len(t, payload.Editors, 1)
	assert.Equal(t, "member-1", payload.Editors[0].ID)
	assert.Equal(t, "Mia", *payload.Editors[0].DisplayName)
}

func TestAddEditor_UnknownEmail(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	f.addGroup("g-1", "Shared")

	_, err := f.svc.AddEditor(f.owner, "g-1", "nobody@team.org")
	assert.True(t, apperrors.Is(err, apperrors.ErrProfileNotFound))
}

func TestAddEditor_OwnerAndDuplicateAreNoOps(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	f.addGroup("g-1", "Shared", "editor-1")

	payload, err := f.svc.AddEditor(f.owner, "g-1", "olive@team.org")
	require.NoError(t, err)
	assert.Len(t, payload.Editors, 1)

	payload, err = f.svc.AddEditor(f.owner, "g-1", "ed@team.org")
	require.NoError(t, err)
	assert.Len(t, payload.Editors, 1)
}

func TestAddEditor_RequiresManagementRights(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	f.addGroup("g-1", "Shared", "editor-1")

	_, err := f.svc.AddEditor(f.editor, "g-1", "mia@team.org")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	// An admin who is neither owner nor editor may grant rights.
	payload, err := f.svc.AddEditor(f.admin, "g-1", "mia@team.org")
	require.NoError(t, err)
	assert.Len(t, payload.Editors, 2)
}

func TestTags_ReturnsDistinctSorted(t *testing.T) {
	t.Parallel()

	f := newGroupFixture()
	g1 := f.addGroup("g-1", "A")
	g1.Tags = []string{"video", "build"}
	g2 := f.addGroup("g-2", "B")
	g2.Tags = []string{"build", "photos"}

	tags, err := f.svc.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"build", "photos", "video"}, tags)
}
