package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts lists the encodings the backend has been observed to emit.
// RFC 3339 (with and without sub-second precision) is the documented format;
// the space-separated variant shows up in rows written by older SQLite
// defaults.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a point in time that tolerates the wire representations the
// service mixes: RFC 3339 strings, date-only strings, Unix seconds, or JSON
// null. Comparisons always go through the resolved instant, never the string
// form.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps an already-parsed instant.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp resolves a string-encoded timestamp. An empty string yields
// the zero Timestamp without an error.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}

	return Timestamp{}, fmt.Errorf("unsupported timestamp encoding: %q", s)
}

// UnmarshalJSON implements json.Unmarshaler. Accepted inputs: null, a quoted
// string in any supported layout, or a Unix-seconds number.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		ts.Time = time.Time{}
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("unquote timestamp: %w", err)
		}
		parsed, err := ParseTimestamp(unquoted)
		if err != nil {
			return err
		}
		ts.Time = parsed.Time
		return nil
	}

	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("unsupported timestamp encoding: %s", raw)
	}
	ts.Time = time.Unix(seconds, 0).UTC()
	return nil
}

// MarshalJSON implements json.Marshaler. The zero value renders as null so
// round-tripped entities keep their "no timestamp" state.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(ts.Format(time.RFC3339Nano))), nil
}

// Before reports whether ts is strictly earlier than other. A zero Timestamp
// is earlier than any non-zero one.
func (ts Timestamp) Before(other Timestamp) bool {
	return ts.Time.Before(other.Time)
}

// Value implements driver.Valuer so entities can be written to the local
// cache directly. The zero value stores as NULL.
func (ts Timestamp) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	return ts.Time, nil
}

// Scan implements sql.Scanner, accepting the representations the SQLite
// driver hands back: time.Time, string-encoded timestamps, Unix seconds, or
// NULL.
func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		ts.Time = time.Time{}
		return nil
	case time.Time:
		ts.Time = v
		return nil
	case string:
		parsed, err := ParseTimestamp(v)
		if err != nil {
			return err
		}
		ts.Time = parsed.Time
		return nil
	case []byte:
		parsed, err := ParseTimestamp(string(v))
		if err != nil {
			return err
		}
		ts.Time = parsed.Time
		return nil
	case int64:
		ts.Time = time.Unix(v, 0).UTC()
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}
