package models

import "time"

// UploadFile is one immutable blob record. Rows are only created in a batch
// after every blob of the group has been stored.
type UploadFile struct {
	ID               string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	GroupID          string    `gorm:"type:uuid;not null;uniqueIndex:idx_group_position,priority:1" json:"group_id"`
	OriginalFilename string    `gorm:"not null" json:"original_filename"`
	FileType         *string   `json:"file_type"`
	ContentType      *string   `json:"content_type"`
	SizeBytes        int64     `gorm:"not null;check:size_bytes >= 0" json:"size_bytes"`
	StoragePath      string    `gorm:"not null;uniqueIndex" json:"storage_path"`
	Position         int       `gorm:"not null;uniqueIndex:idx_group_position,priority:2" json:"position"`
	CreatedAt        time.Time `gorm:"default:now()" json:"created_at"`
}
