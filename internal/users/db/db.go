package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"eventhub/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("user with this email already exists")
)

type DB struct {
	Bun *bun.DB
}

// CreateUser inserts a new row and returns it with the assigned id. A unique
// violation on email maps to ErrEmailExists.
func (d *DB) CreateUser(user models.User) (*models.User, error) {
	_, err := d.Bun.NewInsert().Model(&user).Exec(context.Background())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return &user, nil
}

func (d *DB) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("email = ?", email).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (d *DB) GetUserByID(id int64) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (d *DB) ListUsers() ([]models.User, error) {
	var users []models.User
	err := d.Bun.NewSelect().
		Model(&users).
		Order("id ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser rewrites the subset of fields present in upd. An empty subset is
// a no-op that returns the current record. The password field is expected to
// be hashed already.
func (d *DB) UpdateUser(id int64, upd models.UserUpdate) (*models.User, error) {
	if upd.Empty() {
		return d.GetUserByID(id)
	}

	q := d.Bun.NewUpdate().
		Model((*models.User)(nil)).
		Where("id = ?", id)

	if upd.Email != nil {
		q = q.Set("email = ?", *upd.Email)
	}
	if upd.Name != nil {
		q = q.Set("name = ?", *upd.Name)
	}
	if upd.Password != nil {
		q = q.Set("password = ?", *upd.Password)
	}

	res, err := q.Exec(context.Background())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrUserNotFound
	}

	return d.GetUserByID(id)
}

// DeleteUser removes the row and reports whether one existed.
func (d *DB) DeleteUser(id int64) (bool, error) {
	res, err := d.Bun.NewDelete().
		Model((*models.User)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
