package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
	userRepo "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/infra/storage/user"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/auth/models"
)

// Service сервис регистрации и аутентификации пользователей
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register регистрирует нового пользователя.
// Пароль хранится только в виде bcrypt-хеша
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	s.logger.Info("Register: registering user %q", username)

	if err := validateRegisterRequest(username, req.Password, req.DisplayName, req.DiscordID); err != nil {
		s.logger.Warn("Register: validation failed for %q: %v", username, err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - failed to hash password: %v", ErrStorageUnavailable, err)
	}

	usr, err := s.userRepo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
		DiscordID:    req.DiscordID,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrDuplicateUsername) {
			s.logger.Warn("Register: username %q already taken", username)
			return nil, ErrUsernameTaken
		}
		s.logger.Error("Register: failed to create user %q: %v", username, err)
		return nil, fmt.Errorf("%w: Register - failed to create user: %v", ErrStorageUnavailable, err)
	}

	s.logger.Info("Register: successfully registered user %q id=%d", username, usr.ID)
	return models.FromDomainUser(usr), nil
}

// Login проверяет учетные данные и возвращает пользователя.
// Несуществующее имя и неверный пароль неразличимы для вызывающего
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	s.logger.Info("Login: user %q", username)

	if username == "" || req.Password == "" {
		s.logger.Warn("Login: empty username or password")
		return nil, ErrInvalidCredentials
	}

	usr, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: user %q not found", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: failed to get user %q: %v", username, err)
		return nil, fmt.Errorf("%w: Login - failed to get user: %v", ErrStorageUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user %q", username)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Login: user %q id=%d logged in", username, usr.ID)
	return models.FromDomainUser(usr), nil
}

// GetByID возвращает пользователя по ID (для страницы профиля)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	usr, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetByID: failed to get user id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get user: %v", ErrStorageUnavailable, err)
	}
	return models.FromDomainUser(usr), nil
}

func validateRegisterRequest(username, password string, displayName, discordID *string) error {
	if len(username) < domain.MinUsernameLength || len(username) > domain.MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters",
			ErrInvalidInput, domain.MinUsernameLength, domain.MaxUsernameLength)
	}
	if len(password) < domain.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters",
			ErrInvalidInput, domain.MinPasswordLength)
	}
	if displayName != nil && len(*displayName) > domain.MaxDisplayNameLength {
		return fmt.Errorf("%w: display name is too long", ErrInvalidInput)
	}
	if discordID != nil && len(*discordID) > domain.MaxDiscordIDLength {
		return fmt.Errorf("%w: discord id is too long", ErrInvalidInput)
	}
	return nil
}
