package repository_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-dashboard/internal/repository"

	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	source := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", "file:"+source+"?cache=shared&mode=rwc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);
		CREATE TABLE user_cities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users (id),
			city_id INTEGER NOT NULL,
			UNIQUE (user_id, city_id)
		);
	`)
	require.NoError(t, err)

	return db
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	created, err := repo.Create("ada", "ada@example.com", "hash")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	byEmail, err := repo.ByEmail("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := repo.ByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", byID.Username)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	_, err := repo.Create("ada", "ada@example.com", "hash")
	require.NoError(t, err)

	_, err = repo.Create("other", "ada@example.com", "hash2")
	assert.ErrorIs(t, err, repository.ErrUserExists)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	_, err := repo.ByEmail("ghost@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.BySubject("no-such-subject")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_UpsertBySubject(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	first, err := repo.UpsertBySubject("idp|123", "Ada L", "ada@example.com")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, "idp|123", first.Subject)

	// A later login with updated profile data reuses the same row.
	second, err := repo.UpsertBySubject("idp|123", "Ada Lovelace", "ada@newmail.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ada Lovelace", second.Username)

	stored, err := repo.BySubject("idp|123")
	require.NoError(t, err)
	assert.Equal(t, "ada@newmail.com", stored.Email)
}

func TestCityRepository_AddListRemove(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	cities := repository.NewCityRepository(db)

	user, err := users.Create("ada", "ada@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, cities.Add(user.ID, 703448))
	require.NoError(t, cities.Add(user.ID, 2643743))

	ids, err := cities.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{703448, 2643743}, ids)

	removed, err := cities.Remove(user.ID, 703448)
	require.NoError(t, err)
	assert.True(t, removed)

	ids, err = cities.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{2643743}, ids)
}

func TestCityRepository_DuplicateCity(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	cities := repository.NewCityRepository(db)

	user, err := users.Create("ada", "ada@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, cities.Add(user.ID, 703448))
	assert.ErrorIs(t, cities.Add(user.ID, 703448), repository.ErrCityExists)
}

func TestCityRepository_RemoveIsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	cities := repository.NewCityRepository(db)

	owner, err := users.Create("ada", "ada@example.com", "hash")
	require.NoError(t, err)
	other, err := users.Create("bob", "bob@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, cities.Add(owner.ID, 703448))

	removed, err := cities.Remove(other.ID, 703448)
	require.NoError(t, err)
	assert.False(t, removed)

	ids, err := cities.ListByUser(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{703448}, ids)
}

func TestCityRepository_ListDistinct(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	cities := repository.NewCityRepository(db)

	ada, err := users.Create("ada", "ada@example.com", "hash")
	require.NoError(t, err)
	bob, err := users.Create("bob", "bob@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, cities.Add(ada.ID, 703448))
	require.NoError(t, cities.Add(bob.ID, 703448))
	require.NoError(t, cities.Add(bob.ID, 2643743))

	ids, err := cities.ListDistinct()
	require.NoError(t, err)
	assert.Equal(t, []int{703448, 2643743}, ids)
}
