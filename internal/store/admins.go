package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/RhodP10/Lost-And-Found/internal/model"
)

// IsAdmin reports whether the user has an admin grant.
func IsAdmin(ctx context.Context, db *sql.DB, userID int64) (bool, error) {
	var count int64
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admins WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking admin grant: %w", err)
	}
	return count > 0, nil
}

// ListAdmins returns all admin grants joined with account details.
func ListAdmins(ctx context.Context, db *sql.DB) ([]model.Admin, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT a.id, a.user_id, a.role, a.permissions, a.created_at, a.updated_at,
		        u.username, u.email, u.full_name
		 FROM admins a
		 JOIN users u ON u.id = a.user_id
		 ORDER BY a.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing admins: %w", err)
	}
	defer rows.Close()

	var admins []model.Admin
	for rows.Next() {
		var a model.Admin
		var permissions, fullName sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &a.Role, &permissions, &a.CreatedAt, &a.UpdatedAt,
			&a.Username, &a.Email, &fullName); err != nil {
			return nil, fmt.Errorf("scanning admin: %w", err)
		}
		a.Permissions = permissions.String
		a.FullName = fullName.String
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// AddAdmin grants admin rights to a user. Adding an existing admin is a no-op.
func AddAdmin(ctx context.Context, db *sql.DB, userID int64, role, permissions string) error {
	user, err := GetUser(ctx, db, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user %d", ErrValidation, userID)
	}

	if role == "" {
		role = "admin"
	}

	_, err = db.ExecContext(ctx,
		`INSERT OR IGNORE INTO admins (user_id, role, permissions) VALUES (?, ?, ?)`,
		userID, role, nullIfEmpty(permissions),
	)
	if err != nil {
		return fmt.Errorf("adding admin: %w", err)
	}
	return nil
}

// RemoveAdminByUserID revokes a user's admin grant.
func RemoveAdminByUserID(ctx context.Context, db *sql.DB, userID int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM admins WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("removing admin: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: user %d is not an admin", ErrValidation, userID)
	}
	return nil
}
