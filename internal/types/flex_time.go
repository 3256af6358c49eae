package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	DateLayout,
}

// FlexTime is an optional point in time. It accepts RFC3339, naive ISO timestamps or plain dates.
// null, "" and absent all leave it unset.
type FlexTime struct {
	Time  time.Time
	Valid bool
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	*f = FlexTime{}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("FlexTime: expected string: %w", err)
	}
	t, ok, err := ParseFlexTime(s)
	if err != nil {
		return err
	}
	f.Time, f.Valid = t, ok
	return nil
}

// Ptr returns the instant in UTC, nil when unset.
func (f FlexTime) Ptr() *time.Time {
	if !f.Valid {
		return nil
	}
	t := f.Time.UTC()
	return &t
}

// DatePtr returns the calendar date as written, at midnight UTC. The offset of
// the input picks the day, so 2024-03-10T01:00:00+03:00 stays on the 10th.
func (f FlexTime) DatePtr() *time.Time {
	if !f.Valid {
		return nil
	}
	y, m, d := f.Time.Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// ParseFlexTime parses s with the accepted layouts and keeps the written offset.
// An empty string is not an error.
func ParseFlexTime(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("FlexTime: unrecognized time %q", s)
}

// FormatDate renders an optional date, nil stays nil.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}

// FormatTime renders an optional timestamp as RFC3339, nil stays nil.
func FormatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
