package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The backend is loose about JSON types: ids arrive as numbers or strings,
// flags as booleans, 0/1 or "0"/"1". These types accept any of them.

type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = FlexString(n.String())
	return nil
}

type FlexInt int64

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	var s FlexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	if n, err := strconv.ParseInt(string(s), 10, 64); err == nil {
		*f = FlexInt(n)
		return nil
	}
	// Some endpoints send whole numbers as "12.0".
	n, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", string(s), err)
	}
	*f = FlexInt(int64(n))
	return nil
}

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	var s FlexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", string(s), err)
	}
	*f = FlexFloat(n)
	return nil
}

type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch strings.ToLower(strings.Trim(string(b), `"`)) {
	case "true", "1", "yes", "y":
		*f = true
	case "false", "0", "no", "n", "", "null":
		*f = false
	default:
		return fmt.Errorf("invalid boolean %s", b)
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
}

// parseTimestamp reads a full timestamp, or a time of day anchored on day.
func parseTimestamp(raw *string, day time.Time, loc *time.Location) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return &t, nil
		}
	}

	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			y, m, d := day.In(loc).Date()
			full := time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
			return &full, nil
		}
	}

	return nil, fmt.Errorf("unrecognised time value %q", value)
}

// parseDate reads YYYY-MM-DD, tolerating a trailing time part.
func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 10 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", raw[:10], loc)
	return t, err == nil
}
