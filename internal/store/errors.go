package store

import (
	"errors"
	"strings"
)

// Claim workflow errors. Handlers match these with errors.Is to pick a
// status code; anything else is a store failure and reported as internal.
var (
	// ErrValidation marks malformed or missing input. Wrapped with a reason.
	ErrValidation = errors.New("invalid input")

	// ErrItemNotFound is returned when an item id references nothing.
	ErrItemNotFound = errors.New("item not found")

	// ErrClaimNotFound is returned when a claim id references nothing.
	ErrClaimNotFound = errors.New("claim not found")

	// ErrAlreadyClaimed is returned when the item has already been claimed.
	ErrAlreadyClaimed = errors.New("item has already been claimed")

	// ErrNotClaimable is returned when the item is not a found item.
	// Lost items cannot be claimed.
	ErrNotClaimable = errors.New("only found items can be claimed")

	// ErrDuplicatePendingClaim is returned when the same email already has
	// a pending claim on the item.
	ErrDuplicatePendingClaim = errors.New("a pending claim for this item already exists")

	// ErrCategoryInUse is returned when deleting a category that items
	// still reference.
	ErrCategoryInUse = errors.New("category is in use")

	// ErrCategoryNotFound is returned when a category id references nothing.
	ErrCategoryNotFound = errors.New("category not found")

	// Account errors.
	ErrEmailTaken    = errors.New("email already in use")
	ErrUsernameTaken = errors.New("username already taken")
)

// uniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure on the named column or index. The driver exposes no typed
// error for this, so the message text is the contract. Used to map the
// loser of a write race onto the same sentinel the precondition check
// would have returned.
func uniqueViolation(err error, target string) bool {
	return err != nil &&
		strings.Contains(err.Error(), "UNIQUE constraint failed") &&
		strings.Contains(err.Error(), target)
}
