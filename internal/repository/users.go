package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"

	_ "modernc.org/sqlite"
)

var (
	ErrUserExists = errors.New("user already exists")
	ErrNotFound   = errors.New("not found")
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(username, email, passwordHash string) (models.User, error) {
	var cnt int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM users WHERE email = ?`, email,
	).Scan(&cnt)
	if err != nil {
		return models.User{}, err
	}
	if cnt > 0 {
		return models.User{}, ErrUserExists
	}

	now := time.Now()
	res, err := r.DB.Exec(
		`INSERT INTO users (username, email, password_hash, subject, created_at)
         VALUES (?, ?, ?, '', ?)`,
		username, email, passwordHash, now,
	)
	if err != nil {
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	return models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

func (r *UserRepository) ByEmail(email string) (models.User, error) {
	return r.scanOne(
		`SELECT id, username, email, password_hash, subject, created_at
         FROM users WHERE email = ?`, email,
	)
}

func (r *UserRepository) ByID(id int64) (models.User, error) {
	return r.scanOne(
		`SELECT id, username, email, password_hash, subject, created_at
         FROM users WHERE id = ?`, id,
	)
}

func (r *UserRepository) BySubject(subject string) (models.User, error) {
	return r.scanOne(
		`SELECT id, username, email, password_hash, subject, created_at
         FROM users WHERE subject = ?`, subject,
	)
}

// UpsertBySubject creates an identity-provider account on first login and
// refreshes the display name and email on later ones.
func (r *UserRepository) UpsertBySubject(subject, username, email string) (models.User, error) {
	existing, err := r.BySubject(subject)
	switch {
	case err == nil:
		_, err = r.DB.Exec(
			`UPDATE users SET username = ?, email = ? WHERE id = ?`,
			username, email, existing.ID,
		)
		if err != nil {
			return models.User{}, err
		}
		existing.Username = username
		existing.Email = email
		return existing, nil
	case errors.Is(err, ErrNotFound):
		now := time.Now()
		res, err := r.DB.Exec(
			`INSERT INTO users (username, email, password_hash, subject, created_at)
             VALUES (?, ?, '', ?, ?)`,
			username, email, subject, now,
		)
		if err != nil {
			return models.User{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return models.User{}, err
		}
		return models.User{
			ID:        id,
			Username:  username,
			Email:     email,
			Subject:   subject,
			CreatedAt: now,
		}, nil
	default:
		return models.User{}, err
	}
}

func (r *UserRepository) scanOne(query string, args ...any) (models.User, error) {
	var u models.User
	err := r.DB.QueryRow(query, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Subject, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}
