package models

type ProfileRole string
type ProfileStatus string

const (
	ProfileRoleMember   ProfileRole = "member"
	ProfileRoleUploader ProfileRole = "uploader"
	ProfileRoleAdmin    ProfileRole = "admin"

	ProfileStatusActive   ProfileStatus = "active"
	ProfileStatusAlumni   ProfileStatus = "alumni"
	ProfileStatusInactive ProfileStatus = "inactive"
)

// ValidRole reports whether r is one of the closed role values.
func ValidRole(r ProfileRole) bool {
	switch r {
	case ProfileRoleMember, ProfileRoleUploader, ProfileRoleAdmin:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the closed status values.
func ValidStatus(s ProfileStatus) bool {
	switch s {
	case ProfileStatusActive, ProfileStatusAlumni, ProfileStatusInactive:
		return true
	}
	return false
}
