package models

import "testing"

func TestSessionStatus_Valid(t *testing.T) {
	tests := []struct {
		name   string
		status SessionStatus
		want   bool
	}{
		{"initializing is valid", SessionInitializing, true},
		{"active is valid", SessionActive, true},
		{"completed is valid", SessionCompleted, true},
		{"failed is valid", SessionFailed, true},
		{"empty string is invalid", SessionStatus(""), false},
		{"unknown status is invalid", SessionStatus("running"), false},
		{"uppercase is invalid", SessionStatus("ACTIVE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("SessionStatus(%q).Valid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestSessionStatus_Rank(t *testing.T) {
	tests := []struct {
		status SessionStatus
		want   int
	}{
		{SessionInitializing, 0},
		{SessionActive, 1},
		{SessionCompleted, 2},
		{SessionFailed, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Rank(); got != tt.want {
				t.Errorf("SessionStatus(%q).Rank() = %d, want %d", tt.status, got, tt.want)
			}
		})
	}
}

func TestSessionStatus_Terminal(t *testing.T) {
	tests := []struct {
		status SessionStatus
		want   bool
	}{
		{SessionInitializing, false},
		{SessionActive, false},
		{SessionCompleted, true},
		{SessionFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("SessionStatus(%q).Terminal() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}
