package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
	"github.com/Nazarious-ucu/weather-dashboard/internal/repository"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/auth"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(username, email, passwordHash string) (models.User, error) {
	args := m.Called(username, email, passwordHash)
	user, _ := args.Get(0).(models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) ByEmail(email string) (models.User, error) {
	args := m.Called(email)
	user, _ := args.Get(0).(models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) ByID(id int64) (models.User, error) {
	args := m.Called(id)
	user, _ := args.Get(0).(models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) UpsertBySubject(subject, username, email string) (models.User, error) {
	args := m.Called(subject, username, email)
	user, _ := args.Get(0).(models.User)
	return user, args.Error(1)
}

func TestRegister_HashesPassword(t *testing.T) {
	store := &mockUserStore{}
	store.On("Create", "ada", "ada@example.com", mock.AnythingOfType("string")).
		Return(models.User{ID: 1, Username: "ada", Email: "ada@example.com"}, nil).Once()

	t.Cleanup(func() { store.AssertExpectations(t) })

	svc := auth.NewService(store)

	user, err := svc.Register("ada", "ada@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	storedHash, ok := store.Calls[0].Arguments.Get(2).(string)
	require.True(t, ok)
	assert.NotEqual(t, "correct horse battery", storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("correct horse battery")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := &mockUserStore{}
	store.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(models.User{}, repository.ErrUserExists).Once()

	t.Cleanup(func() { store.AssertExpectations(t) })

	svc := auth.NewService(store)

	_, err := svc.Register("ada", "ada@example.com", "correct horse battery")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &mockUserStore{}
	store.On("ByEmail", "ada@example.com").
		Return(models.User{ID: 7, Email: "ada@example.com", PasswordHash: string(hash)}, nil).Once()

	t.Cleanup(func() { store.AssertExpectations(t) })

	svc := auth.NewService(store)

	user, err := svc.Login("ada@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &mockUserStore{}
	store.On("ByEmail", "ada@example.com").
		Return(models.User{ID: 7, PasswordHash: string(hash)}, nil).Once()

	t.Cleanup(func() { store.AssertExpectations(t) })

	svc := auth.NewService(store)

	_, err = svc.Login("ada@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	store := &mockUserStore{}
	store.On("ByEmail", "ghost@example.com").
		Return(models.User{}, repository.ErrNotFound).Once()

	t.Cleanup(func() { store.AssertExpectations(t) })

	svc := auth.NewService(store)

	_, err := svc.Login("ghost@example.com", "whatever")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
