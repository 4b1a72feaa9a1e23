package repositories

import (
	"errors"
	"strings"

	"teamvault_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserEmail is one row of the roster email projection.
type UserEmail struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type UserRepository interface {
	CreateWithProfile(user *models.User, profile *models.Profile) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	ListEmails() ([]UserEmail, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// CreateWithProfile inserts the identity and its profile in one
// transaction; a failed profile insert leaves no user row behind.
func (r *UserRepositoryImpl) CreateWithProfile(user *models.User, profile *models.Profile) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", user.Email).First(&existing).Error; err == nil {
			return ErrUserAlreadyExists
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.ID = user.ID
		return tx.Create(profile).Error
	})
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListEmails returns the id/email projection used by the roster page.
func (r *UserRepositoryImpl) ListEmails() ([]UserEmail, error) {
	var rows []UserEmail
	err := r.db.Model(&models.User{}).Select("id, email").Scan(&rows).Error
	return rows, err
}
