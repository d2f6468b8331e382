package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TimestampLayout is the zone-less layout the API uses for dates.
const TimestampLayout = "2006-01-02T15:04:05"

var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp is a server date. Zone-less values are read in the local zone.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses any of the layouts the API is known to emit.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*t = Timestamp{}
		return nil
	}

	// [2024, 1, 31, 14, 5, 0] when the server writes dates as arrays
	if strings.HasPrefix(raw, "[") {
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		if len(parts) < 3 {
			return fmt.Errorf("timestamp array too short: %s", raw)
		}
		for len(parts) < 7 {
			parts = append(parts, 0)
		}
		*t = Timestamp{Time: time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], parts[6], time.Local)}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.Format(TimestampLayout))), nil
}

// StatusCode is an HTTP status that the server may send either as a number or
// as an upper-case enum name such as "CONFLICT".
type StatusCode int

var (
	statusNamesOnce sync.Once
	statusNames     map[string]int
)

func statusByName(name string) (int, bool) {
	statusNamesOnce.Do(func() {
		statusNames = make(map[string]int)
		for code := 100; code < 600; code++ {
			text := http.StatusText(code)
			if text == "" {
				continue
			}
			key := strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text))
			statusNames[key] = code
		}
	})
	code, ok := statusNames[strings.ToUpper(strings.TrimSpace(name))]
	return code, ok
}

func (c *StatusCode) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*c = 0
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		*c = StatusCode(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if n, err := strconv.Atoi(s); err == nil {
		*c = StatusCode(n)
		return nil
	}
	// "409 CONFLICT"
	if fields := strings.Fields(s); len(fields) > 1 {
		if n, err := strconv.Atoi(fields[0]); err == nil {
			*c = StatusCode(n)
			return nil
		}
	}
	if n, ok := statusByName(s); ok {
		*c = StatusCode(n)
		return nil
	}
	*c = 0
	return nil
}
