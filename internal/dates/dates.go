// Package dates parses and formats calendar dates.
//
// Input and storage always use the ISO form (2025-10-15). Display uses a
// short human form (Oct 15 2025). The two layouts are never interchanged.
package dates

import (
	"strings"
	"time"

	"github.com/nibzard/kiki-go/internal/kikierr"
)

const (
	// ISOLayout is the only accepted input form and the storage form.
	ISOLayout = "2006-01-02"
	// DisplayLayout is used when rendering tasks for the user.
	DisplayLayout = "Jan 2 2006"
)

// Date is a calendar day with no time or zone component.
type Date struct {
	t time.Time
}

// New returns the date for the given year, month, and day.
// Out-of-range values normalize the way time.Date does.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parse accepts yyyy-mm-dd only. Anything else, including impossible
// days such as 2025-02-30, fails with a validation error.
func Parse(text string) (Date, error) {
	s := strings.TrimSpace(text)
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Date{}, kikierr.Wrap(kikierr.KindValidation, kikierr.CodeInvalidDate, err,
			"invalid date %q, expected yyyy-mm-dd", s)
	}
	return Date{t: t}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(text string) Date {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

// Format renders the date for display, e.g. "Oct 15 2025".
func Format(d Date) string {
	return d.t.Format(DisplayLayout)
}

// FormatISO renders the date for storage, e.g. "2025-10-15".
func FormatISO(d Date) string {
	return d.t.Format(ISOLayout)
}

// String returns the ISO form.
func (d Date) String() string {
	return FormatISO(d)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Within reports whether d falls in [from, to], both ends inclusive.
func (d Date) Within(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}
