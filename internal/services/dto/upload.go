package dto

import "io"

// FileInput is one file of an upload as the handler hands it over:
// an open reader plus the metadata from the multipart part.
type FileInput struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// CreateGroupRequest creates a group and stores its files in order.
type CreateGroupRequest struct {
	UploaderID string      `json:"-"`
	Title      string      `form:"title" validate:"max=200"`
	Notes      string      `form:"notes"`
	Tags       []string    `form:"tags"`
	Files      []FileInput `json:"-"`
}

type CreateGroupResponse struct {
	GroupID   string `json:"group_id"`
	FileCount int    `json:"file_count"`
}
