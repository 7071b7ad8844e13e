package repository

import (
	"database/sql"
	"errors"
)

var ErrCityExists = errors.New("city already on dashboard")

type CityRepository struct {
	DB *sql.DB
}

func NewCityRepository(db *sql.DB) *CityRepository {
	return &CityRepository{DB: db}
}

func (r *CityRepository) Add(userID int64, cityID int) error {
	var cnt int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM user_cities WHERE user_id = ? AND city_id = ?`,
		userID, cityID,
	).Scan(&cnt)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrCityExists
	}

	_, err = r.DB.Exec(
		`INSERT INTO user_cities (user_id, city_id) VALUES (?, ?)`,
		userID, cityID,
	)
	return err
}

// Remove deletes the (user, city) pair and reports whether a row existed.
// A city owned by another user is untouched.
func (r *CityRepository) Remove(userID int64, cityID int) (bool, error) {
	res, err := r.DB.Exec(
		`DELETE FROM user_cities WHERE user_id = ? AND city_id = ?`,
		userID, cityID,
	)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	return count > 0, err
}

func (r *CityRepository) ListByUser(userID int64) ([]int, error) {
	rows, err := r.DB.Query(
		`SELECT city_id FROM user_cities WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListDistinct returns every city id subscribed to by at least one user,
// used by the cache warmer.
func (r *CityRepository) ListDistinct() ([]int, error) {
	rows, err := r.DB.Query(`SELECT DISTINCT city_id FROM user_cities ORDER BY city_id`)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
