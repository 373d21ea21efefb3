package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maintenance-system/maintenance-service/internal/errs"
	"github.com/maintenance-system/maintenance-service/internal/model"
)

// UserAuthenticator is what the token handler depends on.
type UserAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Authenticate returns the user when username and password match.
// Unknown user and wrong password are the same error on purpose.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errs.ErrInvalidCredentials
	}
	return &u, nil
}
