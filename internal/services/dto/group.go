package dto

import (
	"time"

	"teamvault_backend/internal/auth"
)

// GroupListItem is one row of the listing. Files are not expanded here;
// only their count travels with the row.
type GroupListItem struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Notes          *string         `json:"notes"`
	Tags           []string        `json:"tags"`
	CreatedAt      time.Time       `json:"created_at"`
	FilesUpdatedAt *time.Time      `json:"files_updated_at"`
	FileCount      int64           `json:"file_count"`
	Capability     auth.Capability `json:"capability"`
}

// GroupListResponse is one page of the listing. Seq echoes the client's
// sequence number; Stale is set when a query with a higher number was
// already answered, so the client must not render this page.
type GroupListResponse struct {
	Groups     []GroupListItem `json:"groups"`
	TotalCount int64           `json:"total_count"`
	TotalPages int             `json:"total_pages"`
	Page       int             `json:"page"`
	Seq        int64           `json:"seq,omitempty"`
	Stale      bool            `json:"stale,omitempty"`
}

// FileDTO is one file of a group with its time-limited download URL.
// URL is empty when signing failed; the record itself is still listed.
type FileDTO struct {
	ID               string  `json:"id"`
	OriginalFilename string  `json:"original_filename"`
	FileType         *string `json:"file_type"`
	ContentType      *string `json:"content_type"`
	SizeBytes        int64   `json:"size_bytes"`
	Position         int     `json:"position"`
	URL              string  `json:"url,omitempty"`
}

// UploaderDTO identifies the group's owner on the detail page.
type UploaderDTO struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name"`
	Subteam     *string `json:"subteam"`
}

type GroupDetail struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Notes          *string         `json:"notes"`
	Tags           []string        `json:"tags"`
	CreatedAt      time.Time       `json:"created_at"`
	FilesUpdatedAt *time.Time      `json:"files_updated_at"`
	LastEditedAt   *time.Time      `json:"last_edited_at"`
	Uploader       *UploaderDTO    `json:"uploader,omitempty"`
	Files          []FileDTO       `json:"files"`
	Capability     auth.Capability `json:"capability"`
}

// EditorDTO is one entry of the editor list on the edit page.
type EditorDTO struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name"`
}

// GroupEditPayload backs the edit form. Only viewers with edit rights
// ever receive it.
type GroupEditPayload struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Notes      *string         `json:"notes"`
	Tags       []string        `json:"tags"`
	Editors    []EditorDTO     `json:"editors"`
	Capability auth.Capability `json:"capability"`
}

// UpdateGroupRequest carries the metadata edit. Nil fields are left
// untouched. Editors may only be sent by a viewer who can manage them.
type UpdateGroupRequest struct {
	Title   *string   `json:"title" validate:"omitempty,max=200"`
	Notes   *string   `json:"notes"`
	Tags    *[]string `json:"tags"`
	Editors *[]string `json:"editors"`
}

// AddEditorRequest grants edit rights by email.
type AddEditorRequest struct {
	Email string `json:"email" validate:"required,email"`
}
