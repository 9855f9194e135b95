package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString represents a time of day in "HH:MM" 24-hour format.
// Used for booking start/end times and dealership working hours,
// where only the wall-clock time matters and time zones do not apply.
type TimeString string

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени (ожидается HH:MM)
	ErrInvalidTimeFormat = errors.New("invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

// NewTimeString creates a TimeString from a time.Time, keeping only HH:MM.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value matches 24-hour HH:MM (00-23:00-59).
func (ts TimeString) Validate() error {
	if len(ts) != 5 || ts[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(ts))
	}

	for _, i := range []int{0, 1, 3, 4} {
		if ts[i] < '0' || ts[i] > '9' {
			return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(ts))
		}
	}

	hour := int(ts[0]-'0')*10 + int(ts[1]-'0')
	minute := int(ts[3]-'0')*10 + int(ts[4]-'0')

	if hour > 23 || minute > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(ts))
	}

	return nil
}

// IsZero reports whether the value is empty.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// String returns the underlying "HH:MM" representation.
func (ts TimeString) String() string {
	return string(ts)
}

// Minutes returns the time as minutes since midnight.
func (ts TimeString) Minutes() (int, error) {
	if err := ts.Validate(); err != nil {
		return 0, err
	}
	hour := int(ts[0]-'0')*10 + int(ts[1]-'0')
	minute := int(ts[3]-'0')*10 + int(ts[4]-'0')
	return hour*60 + minute, nil
}

// AddMinutes returns the time shifted by m minutes.
// The result must stay within the same day.
func (ts TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := ts.Minutes()
	if err != nil {
		return "", err
	}

	total += m
	if total < 0 || total > 23*60+59 {
		return "", fmt.Errorf("%w: %s%+d minutes", ErrTimeOutOfRange, ts, m)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether ts is strictly earlier than other.
// Lexicographic comparison is correct for zero-padded HH:MM values.
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter reports whether ts is strictly later than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// Value implements driver.Valuer for writing to TIME columns.
// A zero TimeString maps to NULL (closed days keep no times).
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan implements sql.Scanner. Postgres returns TIME values
// as "HH:MM:SS", so seconds are trimmed.
func (ts *TimeString) Scan(src interface{}) error {
	if src == nil {
		*ts = ""
		return nil
	}

	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeFormat, src)
	}

	if len(s) > 5 {
		s = s[:5]
	}

	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}

	*ts = parsed
	return nil
}
