package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"photohub/internal/models"
	"photohub/internal/repositories"
)

var (
	ErrEmailTaken        = errors.New("email already registered")
	ErrEmailNotConfirmed = errors.New("email not confirmed")
)

type UserService interface {
	Register(user *models.User, plainPassword string) error
	GetUserByID(id int) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateProfile(user *models.User) error
	ToggleDarkTheme(userID int) (bool, error)
	ListNewest(limit int) ([]*models.User, error)
	GetUserCount() (int, error)

	// refresh helpers
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	ClearRefresh(userID int) error
	GetByRefreshToken(token string) (*models.User, error)
}

type userService struct {
	repo repositories.UserRepository
	auth AuthService
}

func NewUserService(repo repositories.UserRepository, auth AuthService) UserService {
	return &userService{repo: repo, auth: auth}
}

// Register — создаёт неподтверждённый аккаунт. Код подтверждения выдаётся
// отдельно (ConfirmationService), сразу после создания.
func (s *userService) Register(user *models.User, plainPassword string) error {
	if strings.TrimSpace(plainPassword) == "" {
		return fmt.Errorf("password is required")
	}
	user.Email = strings.TrimSpace(strings.ToLower(user.Email))

	existing, err := s.repo.GetByEmail(user.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hashedPassword, err := s.auth.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashedPassword
	user.EmailConfirmed = false
	user.ConfirmationCode = nil
	user.ConfirmationCodeCreated = nil

	return s.repo.Create(user)
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

func (s *userService) UpdateProfile(user *models.User) error {
	return s.repo.Update(user)
}

func (s *userService) ToggleDarkTheme(userID int) (bool, error) {
	return s.repo.ToggleDarkTheme(userID)
}

func (s *userService) ListNewest(limit int) ([]*models.User, error) {
	return s.repo.ListNewest(limit)
}

func (s *userService) GetUserCount() (int, error) {
	return s.repo.GetCount()
}

func (s *userService) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	return s.repo.UpdateRefresh(userID, token, expiresAt)
}

func (s *userService) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	return s.repo.RotateRefresh(oldToken, newToken, newExpiresAt)
}

func (s *userService) ClearRefresh(userID int) error {
	return s.repo.ClearRefresh(userID)
}

func (s *userService) GetByRefreshToken(token string) (*models.User, error) {
	return s.repo.GetByRefreshToken(token)
}
