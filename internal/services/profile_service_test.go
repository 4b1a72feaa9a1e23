package services

import (
	"testing"

	"teamvault_backend/internal/models"
	"teamvault_backend/internal/services/dto"
	"teamvault_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture() (*fakeProfileRepo, *fakeUserRepo, ProfileService) {
	profileRepo := newFakeProfileRepo()
	userRepo := newFakeUserRepo()
	svc := NewProfileService(profileRepo, userRepo)
	return profileRepo, userRepo, svc
}

func TestListMembers_MergesProfilesWithEmails(t *testing.T) {
	t.Parallel()

	profileRepo, userRepo, svc := newProfileFixture()
	profileRepo.add(&models.Profile{ID: "u-1", Role: models.ProfileRoleMember, DisplayName: strPtr("Bea"), Status: models.ProfileStatusActive})
	profileRepo.add(&models.Profile{ID: "u-2", Role: models.ProfileRoleUploader, DisplayName: strPtr("Al"), Status: models.ProfileStatusAlumni})
	userRepo.add("u-1", "bea@team.org")
	userRepo.add("u-2", "al@team.org")

	members, err := svc.ListMembers()
	require.NoError(t, err)
	require.Len(t, members, 2)

	// Roster order is by display name.
	assert.Equal(t, "u-2", members[0].ID)
	assert.Equal(t, "al@team.org", members[0].Email)
	assert.Equal(t, models.ProfileStatusAlumni, members[0].Status)
	assert.Equal(t, "bea@team.org", members[1].Email)
}

func TestUpdateSettings_WritesOnlySentFields(t *testing.T) {
	t.Parallel()

	profileRepo, userRepo, svc := newProfileFixture()
	profileRepo.add(&models.Profile{ID: "u-1", Role: models.ProfileRoleMember, DisplayName: strPtr("Old"), Subteam: strPtr("software")})
	userRepo.add("u-1", "me@team.org")

	year := 2027
	out, err := svc.UpdateSettings("u-1", &dto.UpdateSettingsRequest{
		DisplayName:    strPtr("New Name"),
		GraduationYear: &year,
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", *out.DisplayName)
	assert.Equal(t, 2027, *out.GraduationYear)
	assert.Equal(t, "software", *out.Subteam)
	assert.Equal(t, "me@team.org", out.Email)
}

func TestUpdateMember_RejectsUnknownEnumValues(t *testing.T) {
	t.Parallel()

	profileRepo, _, svc := newProfileFixture()
	profileRepo.add(&models.Profile{ID: "u-1", Role: models.ProfileRoleMember, Status: models.ProfileStatusActive})

	_, err := svc.UpdateMember("u-1", &dto.UpdateMemberRequest{Role: "superuser", Status: "active"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidRole))

	_, err = svc.UpdateMember("u-1", &dto.UpdateMemberRequest{Role: "admin", Status: "banned"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidStatus))
}

func TestUpdateMember_AppliesRoleAndStatus(t *testing.T) {
	t.Parallel()

	profileRepo, _, svc := newProfileFixture()
	profileRepo.add(&models.Profile{ID: "u-1", Role: models.ProfileRoleMember, Status: models.ProfileStatusActive})

	out, err := svc.UpdateMember("u-1", &dto.UpdateMemberRequest{Role: "uploader", Status: "alumni"})
	require.NoError(t, err)
	assert.Equal(t, models.ProfileRoleUploader, out.Role)
	assert.Equal(t, models.ProfileStatusAlumni, out.Status)
}

func TestUpdateMember_UnknownMember(t *testing.T) {
	t.Parallel()

	_, _, svc := newProfileFixture()

	_, err := svc.UpdateMember("ghost", &dto.UpdateMemberRequest{Role: "member", Status: "active"})
	assert.True(t, apperrors.Is(err, apperrors.ErrProfileNotFound))
}
