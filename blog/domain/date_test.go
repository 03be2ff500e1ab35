package domain

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		ok       bool
	}{
		{name: "Plain day", input: "2024-03-01", expected: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "RFC3339", input: "2024-03-01T10:30:00Z", expected: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), ok: true},
		{name: "Local timestamp", input: "2024-03-01T10:30:00", expected: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), ok: true},
		{name: "Space separated", input: "2024-03-01 10:30:00", expected: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), ok: true},
		{name: "Slashes", input: "2024/03/01", expected: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "Unpadded day", input: "2024-1-5", expected: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "Unpadded slashes", input: "2024/1/5", expected: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "Long month", input: "March 1, 2024", expected: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "Short month", input: "Mar 1, 2024", expected: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "Surrounding whitespace", input: "  2024-03-01\n", expected: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "Empty", input: "", ok: false},
		{name: "Garbage", input: "sometime last spring", ok: false},
		{name: "Invalid day", input: "2024-02-31", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				if !got.IsZero() {
					t.Errorf("ParseDate(%q) = %v, want zero time", tt.input, got)
				}
				return
			}
			if !got.Equal(tt.expected) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{name: "Midnight UTC", input: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), expected: "2024-01-01"},
		{name: "With time", input: time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC), expected: "2024-01-01T09:15:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.input); got != tt.expected {
				t.Errorf("FormatDate() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPost_LastModified(t *testing.T) {
	published := Post{PublishedDate: "2024-01-01"}
	if got := published.LastModified(); got != "2024-01-01" {
		t.Errorf("LastModified() = %q, want %q", got, "2024-01-01")
	}
	if published.IsUpdated() {
		t.Error("IsUpdated() = true for a post without an updated date")
	}

	updated := Post{PublishedDate: "2024-01-01", UpdatedDate: "2024-02-01"}
	if got := updated.LastModified(); got != "2024-02-01" {
		t.Errorf("LastModified() = %q, want %q", got, "2024-02-01")
	}
	if !updated.IsUpdated() {
		t.Error("IsUpdated() = false for a post with an updated date")
	}
}
