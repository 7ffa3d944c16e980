package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/RhodP10/Lost-And-Found/internal/model"
)

// supersededNote is appended to a pending claim's notes when a different
// claim on the same item is approved.
const supersededNote = " (Automatically rejected because another claim was approved)"

// ClaimParams are the claimant-supplied fields for a new claim.
type ClaimParams struct {
	ItemID           int64
	ClaimantName     string
	ClaimantEmail    string
	ClaimantPhone    string
	StudentID        string
	ProofDescription string
	Notes            string
}

// SubmitClaim validates a claim request and inserts a new pending claim.
// Preconditions are checked in order; the first failure wins and nothing
// is written. The checks and the insert run in one transaction, and a
// partial unique index on pending (item, email) pairs backs the duplicate
// check, so concurrent identical submissions cannot both land. The item
// itself is never mutated here.
func SubmitClaim(ctx context.Context, db *sql.DB, p ClaimParams) (*model.Claim, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var itemStatus string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM items WHERE id = ?`, p.ItemID,
	).Scan(&itemStatus)
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading item: %w", err)
	}

	name := strings.TrimSpace(p.ClaimantName)
	if name == "" {
		return nil, fmt.Errorf("%w: claimant name is required", ErrValidation)
	}

	email := strings.TrimSpace(p.ClaimantEmail)
	if email == "" {
		return nil, fmt.Errorf("%w: claimant email is required", ErrValidation)
	}

	if itemStatus == model.ItemStatusClaimed {
		return nil, ErrAlreadyClaimed
	}
	if itemStatus != model.ItemStatusFound {
		return nil, ErrNotClaimable
	}

	var existing int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM claims
		 WHERE item_id = ? AND claimant_email = ? AND status = 'pending'`,
		p.ItemID, email,
	).Scan(&existing)
	if err != nil {
		return nil, fmt.Errorf("checking existing claims: %w", err)
	}
	if existing > 0 {
		return nil, ErrDuplicatePendingClaim
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO claims (item_id, claimant_name, claimant_email, claimant_phone,
		                     student_id, proof_description, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ItemID, name, email,
		nullIfEmpty(p.ClaimantPhone), nullIfEmpty(p.StudentID),
		nullIfEmpty(p.ProofDescription), nullIfEmpty(p.Notes),
	)
	if err != nil {
		if uniqueViolation(err, "idx_claims_pending_dedup") {
			return nil, ErrDuplicatePendingClaim
		}
		return nil, fmt.Errorf("creating claim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting claim id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if uniqueViolation(err, "idx_claims_pending_dedup") {
			return nil, ErrDuplicatePendingClaim
		}
		return nil, fmt.Errorf("committing claim: %w", err)
	}

	return GetClaim(ctx, db, id)
}

// AdjudicateClaim moves a claim to the given status and, on approval,
// marks the item claimed and rejects every other pending claim on it.
// All writes happen in a single transaction; on any failure nothing
// is committed.
//
// Approving a claim requires the item to still be in found status, which
// is re-checked inside the transaction. A second approval attempt against
// an already claimed item fails with ErrAlreadyClaimed; re-approving the
// claim that already holds the approval only updates its notes. Moving a
// previously approved claim out of approved returns the item to found so
// the item can never stay claimed without an approved claim.
func AdjudicateClaim(ctx context.Context, db *sql.DB, claimID int64, status string, notes *string) (*model.Claim, error) {
	if !model.ValidClaimStatus(status) {
		return nil, fmt.Errorf("%w: status must be pending, approved, or rejected", ErrValidation)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		itemID        int64
		currentStatus string
		currentNotes  sql.NullString
	)
	err = tx.QueryRowContext(ctx,
		`SELECT item_id, status, notes FROM claims WHERE id = ?`, claimID,
	).Scan(&itemID, &currentStatus, &currentNotes)
	if err == sql.ErrNoRows {
		return nil, ErrClaimNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading claim: %w", err)
	}

	var itemStatus string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM items WHERE id = ?`, itemID,
	).Scan(&itemStatus)
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading item: %w", err)
	}

	// Approval needs an item that is still claimable, unless this claim
	// already holds the approval (retry after commit is a no-op).
	if status == model.ClaimStatusApproved && currentStatus != model.ClaimStatusApproved {
		if itemStatus == model.ItemStatusClaimed {
			return nil, ErrAlreadyClaimed
		}
		if itemStatus != model.ItemStatusFound {
			return nil, ErrNotClaimable
		}
	}

	newNotes := currentNotes
	if notes != nil {
		newNotes = sql.NullString{String: *notes, Valid: true}
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE claims SET status = ?, notes = ? WHERE id = ?`,
		status, newNotes, claimID,
	); err != nil {
		return nil, fmt.Errorf("updating claim: %w", err)
	}

	switch {
	case status == model.ClaimStatusApproved && currentStatus != model.ClaimStatusApproved:
		result, err := tx.ExecContext(ctx,
			`UPDATE items SET status = 'claimed', updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? AND status = 'found'`, itemID,
		)
		if err != nil {
			return nil, fmt.Errorf("updating item status: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("checking item update: %w", err)
		}
		if n == 0 {
			return nil, ErrAlreadyClaimed
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE claims
			 SET status = 'rejected', notes = COALESCE(notes, '') || ?
			 WHERE item_id = ? AND id != ? AND status = 'pending'`,
			supersededNote, itemID, claimID,
		); err != nil {
			return nil, fmt.Errorf("rejecting superseded claims: %w", err)
		}

	case status != model.ClaimStatusApproved && currentStatus == model.ClaimStatusApproved:
		// The approval is being withdrawn; the item becomes claimable again.
		if _, err := tx.ExecContext(ctx,
			`UPDATE items SET status = 'found', updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? AND status = 'claimed'`, itemID,
		); err != nil {
			return nil, fmt.Errorf("restoring item status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing adjudication: %w", err)
	}

	return GetClaim(ctx, db, claimID)
}

// GetClaim returns a claim by ID, joined with its item's title and status.
func GetClaim(ctx context.Context, db *sql.DB, id int64) (*model.Claim, error) {
	c := &model.Claim{}
	var phone, studentID, proof, notes sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT c.id, c.item_id, c.claimant_name, c.claimant_email, c.claimant_phone,
		        c.student_id, c.proof_description, c.status, c.notes, c.claim_date,
		        i.title, i.status
		 FROM claims c
		 JOIN items i ON i.id = c.item_id
		 WHERE c.id = ?`, id,
	).Scan(&c.ID, &c.ItemID, &c.ClaimantName, &c.ClaimantEmail, &phone,
		&studentID, &proof, &c.Status, &notes, &c.ClaimDate,
		&c.ItemTitle, &c.ItemStatus)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting claim: %w", err)
	}
	c.ClaimantPhone = phone.String
	c.StudentID = studentID.String
	c.ProofDescription = proof.String
	c.Notes = notes.String
	return c, nil
}

// ListClaims returns claims joined with item titles, newest first,
// optionally filtered by item and status.
func ListClaims(ctx context.Context, db *sql.DB, itemID int64, status string) ([]model.Claim, error) {
	query := `SELECT c.id, c.item_id, c.claimant_name, c.claimant_email, c.claimant_phone,
	                 c.student_id, c.proof_description, c.status, c.notes, c.claim_date,
	                 i.title, i.status
	          FROM claims c
	          JOIN items i ON i.id = c.item_id
	          WHERE 1=1`
	var args []any

	if itemID > 0 {
		query += ` AND c.item_id = ?`
		args = append(args, itemID)
	}
	if status != "" {
		query += ` AND c.status = ?`
		args = append(args, status)
	}

	query += ` ORDER BY c.claim_date DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	defer rows.Close()

	var claims []model.Claim
	for rows.Next() {
		var c model.Claim
		var phone, studentID, proof, notes sql.NullString
		if err := rows.Scan(&c.ID, &c.ItemID, &c.ClaimantName, &c.ClaimantEmail, &phone,
			&studentID, &proof, &c.Status, &notes, &c.ClaimDate,
			&c.ItemTitle, &c.ItemStatus); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		c.ClaimantPhone = phone.String
		c.StudentID = studentID.String
		c.ProofDescription = proof.String
		c.Notes = notes.String
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// DeleteClaim removes a claim. Returns ErrClaimNotFound if nothing matched.
func DeleteClaim(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM claims WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting claim: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking claim deletion: %w", err)
	}
	if n == 0 {
		return ErrClaimNotFound
	}
	return nil
}

// nullIfEmpty maps empty strings to NULL for optional text columns.
func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
