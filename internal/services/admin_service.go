package services

import (
	"teamvault_backend/internal/repositories"
	"teamvault_backend/pkg/apperrors"
)

type AdminService interface {
	Stats() (*repositories.AdminStats, error)
}

type AdminServiceImpl struct {
	statsRepo repositories.StatsRepository
}

func NewAdminService(statsRepo repositories.StatsRepository) AdminService {
	return &AdminServiceImpl{statsRepo: statsRepo}
}

func (s *AdminServiceImpl) Stats() (*repositories.AdminStats, error) {
	stats, err := s.statsRepo.Collect()
	if err != nil {
		return nil, apperrors.PersistenceError(err, "admin")
	}
	return stats, nil
}
