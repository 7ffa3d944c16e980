package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/RhodP10/Lost-And-Found/internal/model"
)

// ItemParams are the reporter-supplied fields for an item.
type ItemParams struct {
	Title         string
	Description   string
	Category      string
	Status        string
	Location      string
	Floor         string
	RoomNumber    string
	ReporterName  string
	ReporterEmail string
	ReporterPhone string
	StudentID     string
	ImageURL      string
	UserID        *int64
}

func (p ItemParams) validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if !model.ValidItemStatus(p.Status) {
		return fmt.Errorf("%w: status must be lost, found, or claimed", ErrValidation)
	}
	if strings.TrimSpace(p.ReporterName) == "" {
		return fmt.Errorf("%w: reporter name is required", ErrValidation)
	}
	if strings.TrimSpace(p.ReporterEmail) == "" {
		return fmt.Errorf("%w: reporter email is required", ErrValidation)
	}
	return nil
}

// CreateItem creates a new item report.
func CreateItem(ctx context.Context, db *sql.DB, p ItemParams) (*model.Item, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (title, description, category, status, location, floor,
		                    room_number, reporter_name, reporter_email, reporter_phone,
		                    student_id, image_url, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(p.Title), nullIfEmpty(p.Description), p.Category, p.Status,
		nullIfEmpty(p.Location), nullIfEmpty(p.Floor), nullIfEmpty(p.RoomNumber),
		strings.TrimSpace(p.ReporterName), strings.TrimSpace(p.ReporterEmail),
		nullIfEmpty(p.ReporterPhone), nullIfEmpty(p.StudentID),
		nullIfEmpty(p.ImageURL), p.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var description, location, floor, room, phone, studentID, imageURL sql.NullString
	var userID sql.NullInt64
	err := db.QueryRowContext(ctx,
		`SELECT id, title, description, category, status, location, floor, room_number,
		        date_reported, reporter_name, reporter_email, reporter_phone, student_id,
		        image_url, user_id, created_at, updated_at
		 FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Title, &description, &item.Category, &item.Status,
		&location, &floor, &room, &item.DateReported,
		&item.ReporterName, &item.ReporterEmail, &phone, &studentID,
		&imageURL, &userID, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Description = description.String
	item.Location = location.String
	item.Floor = floor.String
	item.RoomNumber = room.String
	item.ReporterPhone = phone.String
	item.StudentID = studentID.String
	item.ImageURL = imageURL.String
	if userID.Valid {
		item.UserID = &userID.Int64
	}
	return item, nil
}

// ItemFilter narrows ListItems results. Zero values mean no filtering.
type ItemFilter struct {
	Status   string
	Category string
	UserID   int64
	Limit    int
}

// ListItems returns items, newest reports first, optionally filtered.
func ListItems(ctx context.Context, db *sql.DB, f ItemFilter) ([]model.Item, error) {
	query := `SELECT id, title, description, category, status, location, floor, room_number,
	                 date_reported, reporter_name, reporter_email, reporter_phone, student_id,
	                 image_url, user_id, created_at, updated_at
	          FROM items WHERE 1=1`
	var args []any

	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.UserID > 0 {
		query += ` AND user_id = ?`
		args = append(args, f.UserID)
	}

	query += ` ORDER BY date_reported DESC`

	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var description, location, floor, room, phone, studentID, imageURL sql.NullString
		var userID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.Title, &description, &item.Category, &item.Status,
			&location, &floor, &room, &item.DateReported,
			&item.ReporterName, &item.ReporterEmail, &phone, &studentID,
			&imageURL, &userID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Description = description.String
		item.Location = location.String
		item.Floor = floor.String
		item.RoomNumber = room.String
		item.ReporterPhone = phone.String
		item.StudentID = studentID.String
		item.ImageURL = imageURL.String
		if userID.Valid {
			item.UserID = &userID.Int64
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem updates an item's reporter-editable fields.
// The claimed status is reserved for claim adjudication, so edits cannot
// set it directly; an already claimed item keeps its status.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, p ItemParams) (*model.Item, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	current, err := GetItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrItemNotFound
	}

	status := p.Status
	if current.Status == model.ItemStatusClaimed || status == model.ItemStatusClaimed {
		status = current.Status
	}

	result, err := db.ExecContext(ctx,
		`UPDATE items SET title = ?, description = ?, category = ?, status = ?,
		        location = ?, floor = ?, room_number = ?, reporter_name = ?,
		        reporter_email = ?, reporter_phone = ?, student_id = ?, image_url = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		strings.TrimSpace(p.Title), nullIfEmpty(p.Description), p.Category, status,
		nullIfEmpty(p.Location), nullIfEmpty(p.Floor), nullIfEmpty(p.RoomNumber),
		strings.TrimSpace(p.ReporterName), strings.TrimSpace(p.ReporterEmail),
		nullIfEmpty(p.ReporterPhone), nullIfEmpty(p.StudentID), nullIfEmpty(p.ImageURL),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("checking item update: %w", err)
	} else if n == 0 {
		return nil, ErrItemNotFound
	}

	return GetItem(ctx, db, id)
}

// DeleteItem removes an item and all claims referencing it.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Claims reference the item, so they go first.
	if _, err := tx.ExecContext(ctx, `DELETE FROM claims WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("deleting item claims: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking item deletion: %w", err)
	}
	if n == 0 {
		return ErrItemNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item deletion: %w", err)
	}
	return nil
}
