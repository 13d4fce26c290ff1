package errors

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Bench press", false},
		{"unicode", "Kniebeuge über Kopf", false},
		{"empty", "", false},

		{"too long", strings.Repeat("a", 300), true},
		{"newline", "Bench\npress", true},
		{"tab", "Bench\tpress", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText("name", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidWorkout) {
				t.Errorf("ValidateText(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidWorkout)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"alice", false},
		{"alice@example.com", false},
		{"a.b-c_d+e", false},

		{"", true},
		{"-alice", true},
		{"alice smith", true},
		{"alice/../bob", true},
		{strings.Repeat("a", 200), true},
	}

	for _, tt := range tests {
		err := ValidateUsername(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"legs.toml", false},
		{"plan.yaml", false},

		{"", true},
		{"path/to/file.json", true},
		{"path\\to\\file.json", true},
		{".hidden.json", true},
	}

	for _, tt := range tests {
		err := ValidateFilename(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
