package repositories

import (
	"teamvault_backend/internal/models"

	"gorm.io/gorm"
)

type FileRepository interface {
	CreateBatch(files []models.UploadFile) error
	FindByGroupID(groupID string) ([]models.UploadFile, error)
}

type FileRepositoryImpl struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &FileRepositoryImpl{db: db}
}

// CreateBatch inserts all file records in one statement so a group's
// files either all appear or none do.
func (r *FileRepositoryImpl) CreateBatch(files []models.UploadFile) error {
	if len(files) == 0 {
		return nil
	}
	return r.db.Create(&files).Error
}

func (r *FileRepositoryImpl) FindByGroupID(groupID string) ([]models.UploadFile, error) {
	var files []models.UploadFile
	err := r.db.Where("group_id = ?", groupID).Order("position ASC").Find(&files).Error
	return files, err
}
