package repositories

import (
	"errors"

	"teamvault_backend/internal/models"
	"teamvault_backend/internal/types"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var ErrGroupNotFound = errors.New("upload group not found")

// GroupRow is a listing row: the group plus its file count. Files
// themselves are not loaded for listings.
type GroupRow struct {
	models.UploadGroup `gorm:"embedded"`
	FileCount          int64 `gorm:"column:file_count"`
}

type GroupRepository interface {
	Create(group *models.UploadGroup) error
	FindByID(id string) (*models.UploadGroup, error)
	List(query types.ListQuery) ([]GroupRow, int64, error)
	Update(id string, fields map[string]interface{}) error
	UniqueTags() ([]string, error)
}

type GroupRepositoryImpl struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GroupRepositoryImpl{db: db}
}

func (r *GroupRepositoryImpl) Create(group *models.UploadGroup) error {
	return r.db.Create(group).Error
}

func (r *GroupRepositoryImpl) FindByID(id string) (*models.UploadGroup, error) {
	var group models.UploadGroup
	err := r.db.Preload("Files", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&group, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

// List applies the search/tag filters, counts the filtered set, then
// returns one page in the requested sort order.
func (r *GroupRepositoryImpl) List(query types.ListQuery) ([]GroupRow, int64, error) {
	filtered := func(db *gorm.DB) *gorm.DB {
		tx := db.Model(&models.UploadGroup{})
		if query.Search != "" {
			pattern := "%" + query.Search + "%"
			tx = tx.Where("title ILIKE ? OR notes ILIKE ?", pattern, pattern)
		}
		if query.Tag != "" {
			tx = tx.Where("tags @> ?", pq.StringArray{query.Tag})
		}
		return tx
	}

	var total int64
	if err := filtered(r.db).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var order string
	switch query.Sort {
	case types.SortDateAsc:
		order = "created_at ASC"
	case types.SortUpdated:
		order = "files_updated_at DESC NULLS LAST"
	case types.SortTitle:
		order = "title ASC"
	default:
		order = "created_at DESC"
	}

	var rows []GroupRow
	err := filtered(r.db).
		Select("upload_groups.*, (SELECT COUNT(*) FROM upload_files WHERE upload_files.group_id = upload_groups.id) AS file_count").
		Order(order).
		Offset(query.Offset()).
		Limit(query.PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update writes the given columns and fails with ErrGroupNotFound when no
// row matched, which callers treat as the group disappearing (or access
// being revoked) between the read and the write.
func (r *GroupRepositoryImpl) Update(id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.Model(&models.UploadGroup{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// UniqueTags returns every distinct tag across all groups, sorted.
func (r *GroupRepositoryImpl) UniqueTags() ([]string, error) {
	var tags []string
	err := r.db.Model(&models.UploadGroup{}).
		Select("DISTINCT unnest(tags) AS tag").
		Where("tags IS NOT NULL").
		Order("tag ASC").
		Pluck("tag", &tags).Error
	return tags, err
}
