package dates

import (
	"testing"
	"time"

	"github.com/nibzard/kiki-go/internal/kikierr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"iso date", "2025-10-15", New(2025, time.October, 15), false},
		{"surrounding spaces", "  2025-10-15 ", New(2025, time.October, 15), false},
		{"leap day", "2024-02-29", New(2024, time.February, 29), false},
		{"single digit month", "2025-9-30", Date{}, true},
		{"single digit day", "2025-09-3", Date{}, true},
		{"slashes", "2025/10/15", Date{}, true},
		{"day first", "15-10-2025", Date{}, true},
		{"day name", "Monday", Date{}, true},
		{"impossible day", "2025-02-30", Date{}, true},
		{"trailing text", "2025-10-15x", Date{}, true},
		{"empty", "", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q): expected error, got %v", tt.input, got)
				}
				if kikierr.KindOf(err) != kikierr.KindValidation {
					t.Errorf("Parse(%q): kind %v, want validation", tt.input, kikierr.KindOf(err))
				}
				if kikierr.CodeOf(err) != kikierr.CodeInvalidDate {
					t.Errorf("Parse(%q): code %q, want %q", tt.input, kikierr.CodeOf(err), kikierr.CodeInvalidDate)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): unexpected error %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatters(t *testing.T) {
	d := MustParse("2025-10-05")
	if got := Format(d); got != "Oct 5 2025" {
		t.Errorf("Format: got %q, want %q", got, "Oct 5 2025")
	}
	if got := FormatISO(d); got != "2025-10-05" {
		t.Errorf("FormatISO: got %q, want %q", got, "2025-10-05")
	}
	if got := d.String(); got != "2025-10-05" {
		t.Errorf("String: got %q", got)
	}
}

func TestWithin(t *testing.T) {
	from := MustParse("2025-10-10")
	to := MustParse("2025-10-12")

	tests := []struct {
		day  string
		want bool
	}{
		{"2025-10-09", false},
		{"2025-10-10", true},
		{"2025-10-11", true},
		{"2025-10-12", true},
		{"2025-10-13", false},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			if got := MustParse(tt.day).Within(from, to); got != tt.want {
				t.Errorf("Within: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrdering(t *testing.T) {
	d := MustParse("2025-12-31")
	next := New(2026, time.January, 1)
	if !d.Before(next) || !next.After(d) {
		t.Error("expected d before next")
	}
	if d.IsZero() || !(Date{}).IsZero() {
		t.Error("IsZero mismatch")
	}
}
