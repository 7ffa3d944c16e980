package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/RhodP10/Lost-And-Found/internal/model"
)

// CreateUser creates a new user account with unique email and username.
func CreateUser(ctx context.Context, db *sql.DB, email, username, passwordHash, fullName string) (*model.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" {
		return nil, fmt.Errorf("%w: email and username are required", ErrValidation)
	}

	var taken int64
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email,
	).Scan(&taken); err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if taken > 0 {
		return nil, ErrEmailTaken
	}

	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, username,
	).Scan(&taken); err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if taken > 0 {
		return nil, ErrUsernameTaken
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO users (email, username, password_hash, full_name) VALUES (?, ?, ?, ?)`,
		email, username, passwordHash, nullIfEmpty(fullName),
	)
	if err != nil {
		// A concurrent signup can slip past the availability checks; the
		// schema's UNIQUE constraints catch it, so report it the same way.
		switch {
		case uniqueViolation(err, "users.email"):
			return nil, ErrEmailTaken
		case uniqueViolation(err, "users.username"):
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	return getUserBy(ctx, db, "id", id)
}

// GetUserByEmail returns a user by email.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	return getUserBy(ctx, db, "email", email)
}

// GetUserByUsername returns a user by username.
func GetUserByUsername(ctx context.Context, db *sql.DB, username string) (*model.User, error) {
	return getUserBy(ctx, db, "username", username)
}

func getUserBy(ctx context.Context, db *sql.DB, column string, value any) (*model.User, error) {
	u := &model.User{}
	var fullName sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, email, username, password_hash, full_name, created_at, updated_at
		 FROM users WHERE `+column+` = ?`, value,
	).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &fullName, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by %s: %w", column, err)
	}
	u.FullName = fullName.String
	return u, nil
}

// ListUsers returns all users.
func ListUsers(ctx context.Context, db *sql.DB) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, email, username, password_hash, full_name, created_at, updated_at
		 FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		var fullName sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &fullName, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.FullName = fullName.String
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUserProfile updates a user's full name and email.
func UpdateUserProfile(ctx context.Context, db *sql.DB, id int64, email, fullName string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	var taken int64
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ? AND id != ?`, email, id,
	).Scan(&taken); err != nil {
		return fmt.Errorf("checking email: %w", err)
	}
	if taken > 0 {
		return ErrEmailTaken
	}

	_, err := db.ExecContext(ctx,
		`UPDATE users SET email = ?, full_name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		email, nullIfEmpty(fullName), id,
	)
	if err != nil {
		if uniqueViolation(err, "users.email") {
			return ErrEmailTaken
		}
		return fmt.Errorf("updating user profile: %w", err)
	}
	return nil
}

// UpdateUserPassword updates a user's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}
