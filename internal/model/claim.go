package model

import "time"

// Claim represents a request asserting ownership of a found item.
type Claim struct {
	ID               int64     `json:"id"`
	ItemID           int64     `json:"item_id"`
	ClaimantName     string    `json:"claimant_name"`
	ClaimantEmail    string    `json:"claimant_email"`
	ClaimantPhone    string    `json:"claimant_phone,omitempty"`
	StudentID        string    `json:"student_id,omitempty"`
	ProofDescription string    `json:"proof_description,omitempty"`
	Status           string    `json:"status"`
	Notes            string    `json:"notes,omitempty"`
	ClaimDate        time.Time `json:"claim_date"`

	// Joined fields (not always populated).
	ItemTitle  string `json:"item_title,omitempty"`
	ItemStatus string `json:"item_status,omitempty"`
}

// Claim statuses. At most one claim per item ever reaches approved.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// ValidClaimStatus reports whether status is a known claim status.
func ValidClaimStatus(status string) bool {
	switch status {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected:
		return true
	}
	return false
}
