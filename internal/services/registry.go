package services

import (
	"time"

	"teamvault_backend/internal/config"
	"teamvault_backend/internal/repositories"
	"teamvault_backend/internal/storage"

	"gorm.io/gorm"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService    AuthService
	UploadService  UploadService
	GroupService   GroupService
	ProfileService ProfileService
	AdminService   AdminService
}

// NewServiceContainer wires repositories and services against the given
// database and blob store.
func NewServiceContainer(db *gorm.DB, store storage.Storage, cfg *config.Config) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	fileRepo := repositories.NewFileRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	signedURLTTL := time.Duration(cfg.Upload.SignedURLTTL) * time.Second

	return &ServiceContainer{
		AuthService:    NewAuthService(userRepo, profileRepo, refreshTokenRepo),
		UploadService:  NewUploadService(groupRepo, fileRepo, store),
		GroupService:   NewGroupService(groupRepo, profileRepo, userRepo, store, signedURLTTL),
		ProfileService: NewProfileService(profileRepo, userRepo),
		AdminService:   NewAdminService(statsRepo),
	}
}
