package dto

import (
	"time"

	"teamvault_backend/internal/models"
)

// ProfileDTO is the self-service view of one profile.
type ProfileDTO struct {
	ID             string               `json:"id"`
	Email          string               `json:"email,omitempty"`
	Role           models.ProfileRole   `json:"role"`
	Status         models.ProfileStatus `json:"status"`
	DisplayName    *string              `json:"display_name"`
	Subteam        *string              `json:"subteam"`
	GraduationYear *int                 `json:"graduation_year"`
	CreatedAt      time.Time            `json:"created_at"`
}

// UpdateSettingsRequest edits the viewer's own profile. Role and status
// are absent on purpose; only an admin may change those.
type UpdateSettingsRequest struct {
	DisplayName    *string `json:"display_name" validate:"omitempty,max=100"`
	Subteam        *string `json:"subteam" validate:"omitempty,max=100"`
	GraduationYear *int    `json:"graduation_year" validate:"omitempty,min=1990,max=2100"`
}

// MemberDTO is one roster row: the profile merged with its login email.
type MemberDTO struct {
	ID             string               `json:"id"`
	Email          string               `json:"email"`
	DisplayName    *string              `json:"display_name"`
	Subteam        *string              `json:"subteam"`
	GraduationYear *int                 `json:"graduation_year"`
	Role           models.ProfileRole   `json:"role"`
	Status         models.ProfileStatus `json:"status"`
}

// UpdateMemberRequest is the admin-side role/status change.
type UpdateMemberRequest struct {
	Role   string `json:"role" validate:"required,is-profile-role"`
	Status string `json:"status" validate:"required,is-profile-status"`
}
