package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"teamvault_backend/internal/auth"
	"teamvault_backend/internal/models"
	"teamvault_backend/internal/repositories"
	"teamvault_backend/internal/services/dto"
	"teamvault_backend/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(refreshToken string) (*dto.AuthResponse, error)
	Logout(refreshToken string) error
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Register creates the identity and its member profile, then signs the
// user in. New accounts always start as active members; promotion to
// uploader or admin is an admin action.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
	}
	profile := &models.Profile{
		Role:   models.ProfileRoleMember,
		Status: models.ProfileStatusActive,
	}
	if req.DisplayName != "" {
		profile.DisplayName = &req.DisplayName
	}

	// One transaction: either both rows exist afterwards or neither does.
	if err := s.userRepo.CreateWithProfile(user, profile); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildAuthResponse(user, profile)
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	profile, err := s.profileRepo.FindByID(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if profile.Status == models.ProfileStatusInactive {
		return nil, apperrors.NewForbiddenError("Account is inactive")
	}

	return s.buildAuthResponse(user, profile)
}

// Refresh rotates the refresh token and issues a fresh access token.
func (s *AuthServiceImpl) Refresh(refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.refreshTokenRepo.FindByToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.refreshTokenRepo.DeleteByToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	profile, err := s.profileRepo.FindByID(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if profile.Status == models.ProfileStatusInactive {
		return nil, apperrors.NewForbiddenError("Account is inactive")
	}

	if err := s.refreshTokenRepo.DeleteByToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildAuthResponse(user, profile)
}

func (s *AuthServiceImpl) Logout(refreshToken string) error {
	if err := s.refreshTokenRepo.DeleteByToken(refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) buildAuthResponse(user *models.User, profile *models.Profile) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(profile.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := s.createRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserDTO{
			ID:          user.ID,
			Email:       user.Email,
			Role:        profile.Role,
			Status:      profile.Status,
			DisplayName: profile.DisplayName,
			CreatedAt:   user.CreatedAt,
		},
	}, nil
}

func (s *AuthServiceImpl) createRefreshToken(userID string) (string, error) {
	token, err := generateRandomToken()
	if err != nil {
		return "", err
	}
	rt := &models.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(rt); err != nil {
		return "", err
	}
	return token, nil
}

func generateRandomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
