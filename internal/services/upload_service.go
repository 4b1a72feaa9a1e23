package services

import (
	"context"
	"mime"
	"strings"
	"time"

	"teamvault_backend/internal/logger"
	"teamvault_backend/internal/models"
	"teamvault_backend/internal/repositories"
	"teamvault_backend/internal/services/dto"
	"teamvault_backend/internal/storage"
	"teamvault_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type UploadService interface {
	CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*dto.CreateGroupResponse, error)
}

type UploadServiceImpl struct {
	groupRepo repositories.GroupRepository
	fileRepo  repositories.FileRepository
	store     storage.Storage
}

func NewUploadService(
	groupRepo repositories.GroupRepository,
	fileRepo repositories.FileRepository,
	store storage.Storage,
) UploadService {
	return &UploadServiceImpl{
		groupRepo: groupRepo,
		fileRepo:  fileRepo,
		store:     store,
	}
}

// CreateGroup runs the upload workflow: insert the group row, store every
// blob in submission order, then insert all file records in one batch.
// Failure after the group row exists leaves the row (and any stored
// blobs) behind without file records; nothing is compensated.
func (s *UploadServiceImpl) CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*dto.CreateGroupResponse, error) {
	if len(req.Files) == 0 {
		return nil, apperrors.ErrNoFilesSelected
	}

	group := &models.UploadGroup{
		UploaderID: req.UploaderID,
		Title:      strings.TrimSpace(req.Title),
	}
	if group.Title == "" {
		group.Title = "Untitled Upload"
	}
	// Tags are a set: trimmed, deduplicated, NULL when nothing remains.
	if tags := normalizeTags(req.Tags); len(tags) > 0 {
		group.Tags = tags
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		group.Notes = &notes
	}

	if err := s.groupRepo.Create(group); err != nil {
		return nil, apperrors.PersistenceError(err, "upload")
	}

	// Blobs are stored strictly one after another; the first failure
	// aborts the rest. Keys are fresh UUIDs so a retry never collides
	// with a half-finished attempt.
	records := make([]models.UploadFile, 0, len(req.Files))
	for i, f := range req.Files {
		key := "raw/" + uuid.NewString()

		if err := s.store.Save(ctx, key, f.Reader, f.ContentType); err != nil {
			logger.WithError(err).Warn("upload aborted, stored blobs left orphaned",
				"group_id", group.ID, "filename", f.Filename, "stored", i)
			return nil, apperrors.UploadError(err, f.Filename)
		}

		records = append(records, models.UploadFile{
			GroupID:          group.ID,
			OriginalFilename: f.Filename,
			FileType:         deriveFileType(f.Filename),
			ContentType:      deriveContentType(f.Filename, f.ContentType),
			SizeBytes:        f.Size,
			StoragePath:      key,
			Position:         i,
		})
	}

	if err := s.fileRepo.CreateBatch(records); err != nil {
		logger.WithError(err).Warn("file records rejected, stored blobs left orphaned",
			"group_id", group.ID, "stored", len(records))
		return nil, apperrors.PersistenceError(err, "upload")
	}

	now := time.Now()
	if err := s.groupRepo.Update(group.ID, map[string]interface{}{"files_updated_at": now}); err != nil {
		logger.WithError(err).Warn("failed to stamp files_updated_at", "group_id", group.ID)
	}

	return &dto.CreateGroupResponse{
		GroupID:   group.ID,
		FileCount: len(records),
	}, nil
}

// deriveFileType returns the lowercased extension after the last dot, or
// nil when the name has no usable extension.
func deriveFileType(filename string) *string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return nil
	}
	ext := strings.ToLower(filename[idx+1:])
	return &ext
}

// deriveContentType prefers the type declared by the client and falls
// back to a lookup by extension.
func deriveContentType(filename, declared string) *string {
	if declared != "" {
		return &declared
	}
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return nil
	}
	if ct := mime.TypeByExtension(filename[idx:]); ct != "" {
		return &ct
	}
	return nil
}
