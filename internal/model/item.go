package model

import "time"

// Item represents a reported lost or found object.
type Item struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	Location      string    `json:"location,omitempty"`
	Floor         string    `json:"floor,omitempty"`
	RoomNumber    string    `json:"room_number,omitempty"`
	DateReported  time.Time `json:"date_reported"`
	ReporterName  string    `json:"reporter_name"`
	ReporterEmail string    `json:"reporter_email"`
	ReporterPhone string    `json:"reporter_phone,omitempty"`
	StudentID     string    `json:"student_id,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	UserID        *int64    `json:"user_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Item statuses. An item becomes claimed only through claim adjudication.
const (
	ItemStatusLost    = "lost"
	ItemStatusFound   = "found"
	ItemStatusClaimed = "claimed"
)

// ValidItemStatus reports whether status is a known item status.
func ValidItemStatus(status string) bool {
	switch status {
	case ItemStatusLost, ItemStatusFound, ItemStatusClaimed:
		return true
	}
	return false
}
