package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"leading and trailing", "  Ocean View  ", "Ocean View"},
		{"internal runs", "Deluxe    Suite", "Deluxe Suite"},
		{"tabs and newlines", "Room\t101\nWest", "Room 101 West"},
		{"control characters", "Roo\x00m 2", "Room 2"},
		{"idempotent", "Ocean View", "Ocean View"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Guest@Example.COM "); got != "guest@example.com" {
		t.Errorf("NormalizeEmail() = %q, want guest@example.com", got)
	}
}

func TestNormalizeRoomType(t *testing.T) {
	if got := NormalizeRoomType(" Deluxe "); got != "deluxe" {
		t.Errorf("NormalizeRoomType() = %q, want deluxe", got)
	}
}
