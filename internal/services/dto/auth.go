package dto

import (
	"time"

	"teamvault_backend/internal/models"
)

// RegisterRequest creates an identity plus its member profile.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse carries the token pair and the signed-in user.
type AuthResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

type UserDTO struct {
	ID          string               `json:"id"`
	Email       string               `json:"email"`
	Role        models.ProfileRole   `json:"role"`
	Status      models.ProfileStatus `json:"status"`
	DisplayName *string              `json:"display_name"`
	CreatedAt   time.Time            `json:"created_at"`
}
