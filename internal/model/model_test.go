package model

import "testing"

func TestValidItemStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{ItemStatusLost, true},
		{ItemStatusFound, true},
		{ItemStatusClaimed, true},
		{"stolen", false},
		{"", false},
		{"Found", false},
	}

	for _, tt := range tests {
		if got := ValidItemStatus(tt.status); got != tt.expected {
			t.Errorf("ValidItemStatus(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestValidClaimStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{ClaimStatusPending, true},
		{ClaimStatusApproved, true},
		{ClaimStatusRejected, true},
		{"accepted", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidClaimStatus(tt.status); got != tt.expected {
			t.Errorf("ValidClaimStatus(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"12345", true},
		{"123456", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}
