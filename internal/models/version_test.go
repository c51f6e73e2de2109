package models

import (
	"testing"
	"time"
)

func TestWithDefaults(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	got := BuildInfo{}.WithDefaults(now)
	if got.Version != "2024-01-15" {
		t.Errorf("expected date version, got %q", got.Version)
	}
	if got.BuildDate != "2024-01-15T10:00:00.000Z" {
		t.Errorf("expected ISO build date, got %q", got.BuildDate)
	}
	if got.CommitSha != "" || got.Description != "" {
		t.Errorf("expected empty commit and description, got %+v", got)
	}

	kept := BuildInfo{Version: "1.0.0", BuildDate: "2023-05-01T00:00:00Z"}.WithDefaults(now)
	if kept.Version != "1.0.0" || kept.BuildDate != "2023-05-01T00:00:00Z" {
		t.Errorf("explicit values were overwritten: %+v", kept)
	}
}

func TestNewVersionRecord(t *testing.T) {
	archived := time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		info       BuildInfo
		wantCommit string
	}{
		{
			name:       "with commit",
			info:       BuildInfo{Version: "1.2.0", CommitSha: "abcdef1234567890", BuildDate: "2024-01-15T10:00:00Z"},
			wantCommit: "abcdef1234567890",
		},
		{
			name:       "without commit",
			info:       BuildInfo{Version: "1.2.0", BuildDate: "2024-01-15T10:00:00Z"},
			wantCommit: UnknownCommit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewVersionRecord(tt.info, archived)
			if rec.Name != "Version 1.2.0" {
				t.Errorf("unexpected name %q", rec.Name)
			}
			if rec.Path != rec.Version {
				t.Errorf("path %q should equal version %q", rec.Path, rec.Version)
			}
			if rec.CommitSha != tt.wantCommit {
				t.Errorf("expected commit %q, got %q", tt.wantCommit, rec.CommitSha)
			}
			if rec.Archived != "2024-02-01T08:30:00.000Z" {
				t.Errorf("unexpected archived timestamp %q", rec.Archived)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"2024-01-15T10:00:00Z", true},
		{"2024-01-15T10:00:00.123Z", true},
		{"2024-01-15T10:00:00+02:00", true},
		{"2024-01-15", true},
		{"not a date", false},
		{"", false},
	}

	for _, tt := range tests {
		_, ok := ParseTimestamp(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.ok)
		}
	}
}

func TestValidateVersion(t *testing.T) {
	valid := []string{"1.2.0", "2024-01-15", "v3-beta"}
	for _, v := range valid {
		if err := ValidateVersion(v); err != nil {
			t.Errorf("ValidateVersion(%q) unexpected error: %v", v, err)
		}
	}

	invalid := []string{"", "   ", ".", "..", "a/b", `a\b`}
	for _, v := range invalid {
		if err := ValidateVersion(v); err == nil {
			t.Errorf("ValidateVersion(%q) expected error", v)
		}
	}
}
