package models

import (
	"time"

	"github.com/lib/pq"
)

// UploadGroup is a named collection of files owned by one uploader.
// Editors hold edit rights on metadata; the owner is never duplicated
// into the editors set.
type UploadGroup struct {
	ID             string         `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UploaderID     string         `gorm:"type:uuid;not null;index" json:"uploader_id"`
	Title          string         `gorm:"not null;default:'Untitled Upload'" json:"title"`
	Notes          *string        `json:"notes"`
	Tags           pq.StringArray `gorm:"type:text[]" json:"tags"`
	Editors        pq.StringArray `gorm:"type:text[]" json:"editors"`
	CreatedAt      time.Time      `gorm:"default:now()" json:"created_at"`
	FilesUpdatedAt *time.Time     `json:"files_updated_at"`
	LastEditedAt   *time.Time     `json:"last_edited_at"`
	LastEditedBy   *string        `gorm:"type:uuid" json:"last_edited_by"`

	Files []UploadFile `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

// HasEditor reports whether id is in the editors set.
func (g *UploadGroup) HasEditor(id string) bool {
	for _, e := range g.Editors {
		if e == id {
			return true
		}
	}
	return false
}
