package services

import (
	"context"
	"strings"
	"time"

	"teamvault_backend/internal/auth"
	"teamvault_backend/internal/logger"
	"teamvault_backend/internal/models"
	"teamvault_backend/internal/repositories"
	"teamvault_backend/internal/services/dto"
	"teamvault_backend/internal/storage"
	"teamvault_backend/internal/types"
	"teamvault_backend/pkg/apperrors"

	"github.com/lib/pq"
)

type GroupService interface {
	List(viewer *models.Profile, query types.ListQuery) (*dto.GroupListResponse, error)
	Tags() ([]string, error)
	GetDetail(ctx context.Context, viewer *models.Profile, id string) (*dto.GroupDetail, error)
	GetForEdit(viewer *models.Profile, id string) (*dto.GroupEditPayload, error)
	Update(viewer *models.Profile, id string, req *dto.UpdateGroupRequest) (*dto.GroupEditPayload, error)
	AddEditor(viewer *models.Profile, id, email string) (*dto.GroupEditPayload, error)
}

type GroupServiceImpl struct {
	groupRepo    repositories.GroupRepository
	profileRepo  repositories.ProfileRepository
	userRepo     repositories.UserRepository
	store        storage.Storage
	signedURLTTL time.Duration
}

func NewGroupService(
	groupRepo repositories.GroupRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	store storage.Storage,
	signedURLTTL time.Duration,
) GroupService {
	return &GroupServiceImpl{
		groupRepo:    groupRepo,
		profileRepo:  profileRepo,
		userRepo:     userRepo,
		store:        store,
		signedURLTTL: signedURLTTL,
	}
}

// List returns one page of groups with the viewer's capabilities attached
// to every row.
func (s *GroupServiceImpl) List(viewer *models.Profile, query types.ListQuery) (*dto.GroupListResponse, error) {
	query.Normalize()

	rows, total, err := s.groupRepo.List(query)
	if err != nil {
		return nil, apperrors.PersistenceError(err, "groups")
	}

	items := make([]dto.GroupListItem, 0, len(rows))
	for i := range rows {
		g := &rows[i].UploadGroup
		items = append(items, dto.GroupListItem{
			ID:             g.ID,
			Title:          g.Title,
			Notes:          g.Notes,
			Tags:           g.Tags,
			CreatedAt:      g.CreatedAt,
			FilesUpdatedAt: g.FilesUpdatedAt,
			FileCount:      rows[i].FileCount,
			Capability:     auth.Evaluate(viewer, g),
		})
	}

	return &dto.GroupListResponse{
		Groups:     items,
		TotalCount: total,
		TotalPages: types.TotalPages(total, query.PageSize),
		Page:       query.Page,
	}, nil
}

func (s *GroupServiceImpl) Tags() ([]string, error) {
	tags, err := s.groupRepo.UniqueTags()
	if err != nil {
		return nil, apperrors.PersistenceError(err, "groups")
	}
	return tags, nil
}

// GetDetail loads a group with its files and signs a download URL per
// file. A file whose URL cannot be signed is still listed, without URL.
func (s *GroupServiceImpl) GetDetail(ctx context.Context, viewer *models.Profile, id string) (*dto.GroupDetail, error) {
	group, err := s.findGroup(id)
	if err != nil {
		return nil, err
	}

	files := make([]dto.FileDTO, 0, len(group.Files))
	for _, f := range group.Files {
		url, err := s.store.GetSignedURL(ctx, f.StoragePath, s.signedURLTTL)
		if err != nil {
			logger.WithError(err).Warn("failed to sign download URL", "file_id", f.ID)
			url = ""
		}
		files = append(files, dto.FileDTO{
			ID:               f.ID,
			OriginalFilename: f.OriginalFilename,
			FileType:         f.FileType,
			ContentType:      f.ContentType,
			SizeBytes:        f.SizeBytes,
			Position:         f.Position,
			URL:              url,
		})
	}

	detail := &dto.GroupDetail{
		ID:             group.ID,
		Title:          group.Title,
		Notes:          group.Notes,
		Tags:           group.Tags,
		CreatedAt:      group.CreatedAt,
		FilesUpdatedAt: group.FilesUpdatedAt,
		LastEditedAt:   group.LastEditedAt,
		Files:          files,
		Capability:     auth.Evaluate(viewer, group),
	}

	if uploader, err := s.profileRepo.FindByID(group.UploaderID); err == nil {
		detail.Uploader = &dto.UploaderDTO{
			ID:          uploader.ID,
			DisplayName: uploader.DisplayName,
			Subteam:     uploader.Subteam,
		}
	}

	return detail, nil
}

// GetForEdit loads the edit payload. Viewers without edit rights get the
// same not-found error as for a missing group.
func (s *GroupServiceImpl) GetForEdit(viewer *models.Profile, id string) (*dto.GroupEditPayload, error) {
	group, err := s.findGroup(id)
	if err != nil {
		return nil, err
	}

	cap := auth.Evaluate(viewer, group)
	if !cap.CanEdit {
		return nil, apperrors.ErrGroupNotFound
	}

	return s.buildEditPayload(group, cap), nil
}

// Update applies a metadata edit. Edit rights are re-evaluated here, at
// mutation time, not trusted from whenever the form was loaded.
func (s *GroupServiceImpl) Update(viewer *models.Profile, id string, req *dto.UpdateGroupRequest) (*dto.GroupEditPayload, error) {
	group, err := s.findGroup(id)
	if err != nil {
		return nil, err
	}

	cap := auth.Evaluate(viewer, group)
	if !cap.CanEdit {
		return nil, apperrors.ErrGroupNotFound
	}
	if req.Editors != nil && !cap.CanManageEditors {
		return nil, apperrors.PermissionError("groups")
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			title = "Untitled Upload"
		}
		fields["title"] = title
	}
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if notes == "" {
			fields["notes"] = nil
		} else {
			fields["notes"] = notes
		}
	}
	if req.Tags != nil {
		fields["tags"] = pq.StringArray(normalizeTags(*req.Tags))
	}
	if req.Editors != nil {
		fields["editors"] = pq.StringArray(stripOwner(*req.Editors, group.UploaderID))
	}

	if len(fields) > 0 {
		now := time.Now()
		fields["last_edited_at"] = now
		fields["last_edited_by"] = viewer.ID

		if err := s.groupRepo.Update(id, fields); err != nil {
			if apperrors.Is(err, repositories.ErrGroupNotFound) {
				// Zero rows written: the group vanished or the write was
				// rejected. The caller cannot tell which.
				return nil, apperrors.PermissionError("groups")
			}
			return nil, apperrors.PersistenceError(err, "groups")
		}
	}

	updated, err := s.findGroup(id)
	if err != nil {
		return nil, err
	}
	return s.buildEditPayload(updated, auth.Evaluate(viewer, updated)), nil
}

// AddEditor grants edit rights to the account registered under email.
// Granting to the owner or an existing editor is a no-op.
func (s *GroupServiceImpl) AddEditor(viewer *models.Profile, id, email string) (*dto.GroupEditPayload, error) {
	group, err := s.findGroup(id)
	if err != nil {
		return nil, err
	}

	cap := auth.Evaluate(viewer, group)
	if !cap.CanEdit {
		return nil, apperrors.ErrGroupNotFound
	}
	if !cap.CanManageEditors {
		return nil, apperrors.PermissionError("groups")
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if user.ID != group.UploaderID && !group.HasEditor(user.ID) {
		editors := append([]string{}, group.Editors...)
		editors = append(editors, user.ID)

		now := time.Now()
		err := s.groupRepo.Update(id, map[string]interface{}{
			"editors":        pq.StringArray(editors),
			"last_edited_at": now,
			"last_edited_by": viewer.ID,
		})
		if err != nil {
			if apperrors.Is(err, repositories.ErrGroupNotFound) {
				return nil, apperrors.PermissionError("groups")
			}
			return nil, apperrors.PersistenceError(err, "groups")
		}
	}

	updated, err := s.findGroup(id)
	if err != nil {
		return nil, err
	}
	return s.buildEditPayload(updated, auth.Evaluate(viewer, updated)), nil
}

func (s *GroupServiceImpl) findGroup(id string) (*models.UploadGroup, error) {
	group, err := s.groupRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrGroupNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.PersistenceError(err, "groups")
	}
	return group, nil
}

func (s *GroupServiceImpl) buildEditPayload(group *models.UploadGroup, cap auth.Capability) *dto.GroupEditPayload {
	editors := make([]dto.EditorDTO, 0, len(group.Editors))
	profiles, err := s.profileRepo.FindByIDs(group.Editors)
	if err != nil {
		logger.WithError(err).Warn("failed to resolve editor profiles", "group_id", group.ID)
	}
	byID := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}
	for _, editorID := range group.Editors {
		e := dto.EditorDTO{ID: editorID}
		if p, ok := byID[editorID]; ok {
			e.DisplayName = p.DisplayName
		}
		editors = append(editors, e)
	}

	return &dto.GroupEditPayload{
		ID:         group.ID,
		Title:      group.Title,
		Notes:      group.Notes,
		Tags:       group.Tags,
		Editors:    editors,
		Capability: cap,
	}
}

// normalizeTags trims entries and drops empties and duplicates, keeping
// first-seen order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// stripOwner removes the group owner from an editor list. The owner's
// rights are implicit and never stored.
func stripOwner(editors []string, ownerID string) []string {
	out := make([]string, 0, len(editors))
	for _, e := range editors {
		if e == ownerID || e == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
