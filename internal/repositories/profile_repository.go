package repositories

import (
	"errors"

	"teamvault_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	FindByID(id string) (*models.Profile, error)
	FindByIDs(ids []string) ([]models.Profile, error)
	List() ([]models.Profile, error)
	UpdateSelf(id string, fields map[string]interface{}) error
	UpdateRoleStatus(id string, role models.ProfileRole, status models.ProfileStatus) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) FindByID(id string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByIDs(ids []string) ([]models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var profiles []models.Profile
	err := r.db.Where("id IN ?", ids).Find(&profiles).Error
	return profiles, err
}

// List returns all profiles ordered by display name, the roster order.
func (r *ProfileRepositoryImpl) List() ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Order("display_name ASC NULLS LAST").Find(&profiles).Error
	return profiles, err
}

// UpdateSelf writes the self-service fields only. Role and status are
// not accepted here; those go through UpdateRoleStatus.
func (r *ProfileRepositoryImpl) UpdateSelf(id string, fields map[string]interface{}) error {
	allowed := map[string]bool{
		"display_name":    true,
		"subteam":         true,
		"graduation_year": true,
	}
	filtered := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	result := r.db.Model(&models.Profile{}).Where("id = ?", id).Updates(filtered)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) UpdateRoleStatus(id string, role models.ProfileRole, status models.ProfileStatus) error {
	result := r.db.Model(&models.Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"role":   role,
		"status": status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
