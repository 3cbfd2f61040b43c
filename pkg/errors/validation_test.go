package errors

import (
	"testing"
)

func TestValidateQubit(t *testing.T) {
	tests := []struct {
		name    string
		q, n    int
		wantErr bool
	}{
		{"first", 0, 5, false},
		{"last", 4, 5, false},
		{"negative", -1, 5, true},
		{"past end", 5, 5, true},
		{"empty device", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQubit(tt.q, tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQubit(%d, %d) error = %v, wantErr %v", tt.q, tt.n, err, tt.wantErr)
			}
			if err != nil && !IsConfiguration(err) {
				t.Errorf("error code = %v, want CONFIGURATION", GetCode(err))
			}
		})
	}
}

func TestValidateQubits(t *testing.T) {
	if err := ValidateQubits("terminal", []int{0, 1, 2}, 3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateQubits("terminal", []int{0, 9}, 3)
	if err == nil {
		t.Fatal("expected error for qubit 9")
	}
	if got := UserMessage(err); got != "terminal qubit 9 out of range [0, 3)" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestValidatePermutation(t *testing.T) {
	tests := []struct {
		name    string
		order   []int
		n       int
		wantErr bool
	}{
		{"identity", []int{0, 1, 2}, 3, false},
		{"reversed", []int{2, 1, 0}, 3, false},
		{"empty", nil, 0, false},
		{"too short", []int{0, 1}, 3, true},
		{"repeat", []int{0, 1, 1}, 3, true},
		{"out of range", []int{0, 1, 3}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePermutation("reduce order", tt.order, tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePermutation(%v) error = %v, wantErr %v", tt.order, err, tt.wantErr)
			}
		})
	}
}
