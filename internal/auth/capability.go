package auth

import "teamvault_backend/internal/models"

// Capability is a viewer's rights on one upload group.
type Capability struct {
	IsOwner          bool `json:"is_owner"`
	IsEditor         bool `json:"is_editor"`
	IsAdmin          bool `json:"is_admin"`
	CanEdit          bool `json:"can_edit"`
	CanManageEditors bool `json:"can_manage_editors"`
}

// Evaluate computes the viewer's capabilities for a group. Pure and total:
// a nil viewer behaves like an anonymous member and gets no rights.
// Editors may edit metadata but only the owner or an admin may alter the
// editor list itself.
func Evaluate(viewer *models.Profile, group *models.UploadGroup) Capability {
	if viewer == nil || group == nil {
		return Capability{}
	}

	cap := Capability{
		IsOwner:  group.UploaderID == viewer.ID,
		IsEditor: group.HasEditor(viewer.ID),
		IsAdmin:  viewer.Role == models.ProfileRoleAdmin,
	}
	cap.CanEdit = cap.IsOwner || cap.IsEditor || cap.IsAdmin
	cap.CanManageEditors = cap.IsOwner || cap.IsAdmin
	return cap
}
