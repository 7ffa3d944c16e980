package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats are the dashboard counters.
type Stats struct {
	TotalItems   int64 `json:"totalItems"`
	LostItems    int64 `json:"lostItems"`
	FoundItems   int64 `json:"foundItems"`
	ClaimedItems int64 `json:"claimedItems"`
	TotalClaims  int64 `json:"totalClaims"`
	TotalUsers   int64 `json:"totalUsers"`
	TotalAdmins  int64 `json:"totalAdmins"`
}

// GetStats returns registry-wide counters for the admin dashboard.
func GetStats(ctx context.Context, db *sql.DB) (*Stats, error) {
	s := &Stats{}
	err := db.QueryRowContext(ctx,
		`SELECT
		    (SELECT COUNT(*) FROM items),
		    (SELECT COUNT(*) FROM items WHERE status = 'lost'),
		    (SELECT COUNT(*) FROM items WHERE status = 'found'),
		    (SELECT COUNT(*) FROM items WHERE status = 'claimed'),
		    (SELECT COUNT(*) FROM claims),
		    (SELECT COUNT(*) FROM users),
		    (SELECT COUNT(*) FROM admins)`,
	).Scan(&s.TotalItems, &s.LostItems, &s.FoundItems, &s.ClaimedItems,
		&s.TotalClaims, &s.TotalUsers, &s.TotalAdmins)
	if err != nil {
		return nil, fmt.Errorf("getting stats: %w", err)
	}
	return s, nil
}
