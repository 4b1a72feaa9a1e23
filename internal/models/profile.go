package models

import "time"

// Profile holds the portal-facing account data for one identity.
// Created on first authentication; never hard-deleted.
type Profile struct {
	ID             string        `gorm:"type:uuid;primaryKey" json:"id"`
	Role           ProfileRole   `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	DisplayName    *string       `json:"display_name"`
	Subteam        *string       `json:"subteam"`
	GraduationYear *int          `json:"graduation_year"`
	Status         ProfileStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt      time.Time     `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == ProfileRoleAdmin
}

// CanUpload reports whether the profile may create upload groups.
func (p *Profile) CanUpload() bool {
	return p != nil && (p.Role == ProfileRoleUploader || p.Role == ProfileRoleAdmin)
}
