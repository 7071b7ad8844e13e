package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
	"github.com/Nazarious-ucu/weather-dashboard/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type userStore interface {
	Create(username, email, passwordHash string) (models.User, error)
	ByEmail(email string) (models.User, error)
	ByID(id int64) (models.User, error)
	UpsertBySubject(subject, username, email string) (models.User, error)
}

// Service implements local credential accounts. Identity-provider logins go
// through OIDCService instead; both end in the same users table.
type Service struct {
	users userStore
}

func NewService(users userStore) *Service {
	return &Service{users: users}
}

func (s *Service) Register(username, email, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.users.Create(username, email, string(hash))
	if errors.Is(err, repository.ErrUserExists) {
		return models.User{}, ErrEmailTaken
	}
	return user, err
}

func (s *Service) Login(email, password string) (models.User, error) {
	user, err := s.users.ByEmail(email)
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) ByID(id int64) (models.User, error) {
	return s.users.ByID(id)
}
