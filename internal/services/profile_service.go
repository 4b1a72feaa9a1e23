package services

import (
	"teamvault_backend/internal/models"
	"teamvault_backend/internal/repositories"
	"teamvault_backend/internal/services/dto"
	"teamvault_backend/pkg/apperrors"
)

type ProfileService interface {
	GetSettings(userID string) (*dto.ProfileDTO, error)
	UpdateSettings(userID string, req *dto.UpdateSettingsRequest) (*dto.ProfileDTO, error)
	ListMembers() ([]dto.MemberDTO, error)
	UpdateMember(memberID string, req *dto.UpdateMemberRequest) (*dto.ProfileDTO, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository, userRepo repositories.UserRepository) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (s *ProfileServiceImpl) GetSettings(userID string) (*dto.ProfileDTO, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	out := buildProfileDTO(profile)
	if user, err := s.userRepo.FindByID(userID); err == nil {
		out.Email = user.Email
	}
	return out, nil
}

// UpdateSettings writes the viewer's own editable fields. A nil field is
// left untouched; role and status never pass through here.
func (s *ProfileServiceImpl) UpdateSettings(userID string, req *dto.UpdateSettingsRequest) (*dto.ProfileDTO, error) {
	fields := map[string]interface{}{}
	if req.DisplayName != nil {
		fields["display_name"] = *req.DisplayName
	}
	if req.Subteam != nil {
		fields["subteam"] = *req.Subteam
	}
	if req.GraduationYear != nil {
		fields["graduation_year"] = *req.GraduationYear
	}

	if len(fields) > 0 {
		if err := s.profileRepo.UpdateSelf(userID, fields); err != nil {
			if apperrors.Is(err, repositories.ErrProfileNotFound) {
				return nil, apperrors.ErrProfileNotFound
			}
			return nil, apperrors.PersistenceError(err, "profiles")
		}
	}

	return s.GetSettings(userID)
}

// ListMembers merges every profile with its login email, in roster order.
func (s *ProfileServiceImpl) ListMembers() ([]dto.MemberDTO, error) {
	profiles, err := s.profileRepo.List()
	if err != nil {
		return nil, apperrors.PersistenceError(err, "profiles")
	}

	emails, err := s.userRepo.ListEmails()
	if err != nil {
		return nil, apperrors.PersistenceError(err, "profiles")
	}
	emailByID := make(map[string]string, len(emails))
	for _, e := range emails {
		emailByID[e.ID] = e.Email
	}

	members := make([]dto.MemberDTO, 0, len(profiles))
	for _, p := range profiles {
		members = append(members, dto.MemberDTO{
			ID:             p.ID,
			Email:          emailByID[p.ID],
			DisplayName:    p.DisplayName,
			Subteam:        p.Subteam,
			GraduationYear: p.GraduationYear,
			Role:           p.Role,
			Status:         p.Status,
		})
	}
	return members, nil
}

// UpdateMember is the admin-side role/status change. Both values must be
// members of the closed enums.
func (s *ProfileServiceImpl) UpdateMember(memberID string, req *dto.UpdateMemberRequest) (*dto.ProfileDTO, error) {
	role := models.ProfileRole(req.Role)
	status := models.ProfileStatus(req.Status)
	if !models.ValidRole(role) {
		return nil, apperrors.ErrInvalidRole
	}
	if !models.ValidStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	if err := s.profileRepo.UpdateRoleStatus(memberID, role, status); err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.PersistenceError(err, "profiles")
	}

	profile, err := s.findProfile(memberID)
	if err != nil {
		return nil, err
	}
	return buildProfileDTO(profile), nil
}

func (s *ProfileServiceImpl) findProfile(id string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.PersistenceError(err, "profiles")
	}
	return profile, nil
}

func buildProfileDTO(p *models.Profile) *dto.ProfileDTO {
	return &dto.ProfileDTO{
		ID:             p.ID,
		Role:           p.Role,
		Status:         p.Status,
		DisplayName:    p.DisplayName,
		Subteam:        p.Subteam,
		GraduationYear: p.GraduationYear,
		CreatedAt:      p.CreatedAt,
	}
}
