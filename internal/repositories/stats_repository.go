package repositories

import (
	"teamvault_backend/internal/models"

	"gorm.io/gorm"
)

// AdminStats aggregates the counters shown on the admin dashboard.
type AdminStats struct {
	TotalMembers   int64            `json:"total_members"`
	TotalGroups    int64            `json:"total_groups"`
	TotalFiles     int64            `json:"total_files"`
	TotalStorage   int64            `json:"total_storage"`
	RecentProfiles []models.Profile `json:"recent_profiles"`
}

type StatsRepository interface {
	Collect() (*AdminStats, error)
}

type StatsRepositoryImpl struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &StatsRepositoryImpl{db: db}
}

func (r *StatsRepositoryImpl) Collect() (*AdminStats, error) {
	var stats AdminStats

	if err := r.db.Model(&models.Profile{}).Count(&stats.TotalMembers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.UploadGroup{}).Count(&stats.TotalGroups).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.UploadFile{}).Count(&stats.TotalFiles).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.UploadFile{}).
		Select("COALESCE(SUM(size_bytes), 0)").
		Scan(&stats.TotalStorage).Error; err != nil {
		return nil, err
	}
	if err := r.db.Order("created_at DESC").Limit(5).Find(&stats.RecentProfiles).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
