package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/review-board/internal/apperror"
	"github.com/sakif/review-board/internal/model"
	"github.com/sakif/review-board/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, user_name, first_name, last_name, sex, role, password,
	created_by, created_date, updated_by, updated_date`

// CreateUser inserts a user and fills in its new ID.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()

	_, err := db.conn.NamedExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (:id, :user_name, :first_name, :last_name, :sex, :role, :password,
		         :created_by, :created_date, :updated_by, :updated_date)`,
		user,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %q: %w", user.UserName, err)
	}
	return nil
}

// GetUserByID returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if err := checkID("user", id); err != nil {
		return nil, err
	}

	var u model.User
	err := db.conn.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}
	return &u, nil
}

// GetUserByUserName returns apperror.ErrNotFound if the name is free.
func (db *DB) GetUserByUserName(ctx context.Context, userName string) (*model.User, error) {
	var u model.User
	err := db.conn.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE user_name = ?`, userName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("sqlite: getting user by name %q: %w", userName, err)
	}
	return &u, nil
}

// ListUsers returns every user in insertion order.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := db.conn.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	return users, nil
}

// UpdateUser writes every mutable column of user. The caller merges the
// patch onto the stored record first.
func (db *DB) UpdateUser(ctx context.Context, user *model.User) error {
	if err := checkID("user", user.ID); err != nil {
		return err
	}

	res, err := db.conn.NamedExecContext(ctx,
		`UPDATE users SET user_name = :user_name, first_name = :first_name, last_name = :last_name,
		        sex = :sex, role = :role, password = :password,
		        updated_by = :updated_by, updated_date = :updated_date
		 WHERE id = :id`,
		user,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("User not found")
	}
	return nil
}

// DeleteUser removes only the user row; dependent records are the caller's
// concern.
func (db *DB) DeleteUser(ctx context.Context, id string) (model.DeleteResult, error) {
	return db.deleteByID(ctx, "users", "user", id, "User not found")
}
