package json_types

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp tries the layouts the backend is known to emit.
// Values without a zone are read as UTC.
func ParseTimestamp(str string) (time.Time, bool) {
	str = strings.TrimSpace(str)
	if str == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, str, time.UTC); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Timestamp keeps the raw backend text next to the parsed value.
// A null or unparseable value decodes to the zero time without error.
type Timestamp struct {
	Time time.Time
	Raw  string
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Raw: t.Format(time.RFC3339)}
}

func (t Timestamp) Valid() bool {
	return !t.Time.IsZero()
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, _ := ParseTimestamp(str)
	*t = Timestamp{Time: parsed, Raw: str}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw == "" {
		if t.Time.IsZero() {
			return []byte("null"), nil
		}
		return json.Marshal(t.Time.Format(time.RFC3339))
	}
	return json.Marshal(t.Raw)
}

func (t Timestamp) String() string {
	return t.Raw
}
