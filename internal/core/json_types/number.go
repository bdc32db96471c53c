package json_types

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingNumber  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingInteger = regexp.MustCompile(`^[+-]?\d+`)
)

// LeadingFloat reads the numeric prefix of s, so "50abc" is 50.
// ok is false when s does not start with a number.
func LeadingFloat(s string) (v float64, ok bool) {
	match := leadingNumber.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LeadingInt reads the decimal digits at the start of s; "4.7" and "4e1"
// are both 4.
func LeadingInt(s string) (v int, ok bool) {
	match := leadingInteger.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0, false
	}
	v, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFloat is LeadingFloat with 0 for unparsable input.
func ParseFloat(s string) float64 {
	v, _ := LeadingFloat(s)
	return v
}

// ParseInt is LeadingInt with 0 for unparsable input.
func ParseInt(s string) int {
	v, _ := LeadingInt(s)
	return v
}

// FlexFloat accepts a JSON number, a numeric string or null and writes
// the value back in the form it was read.
type FlexFloat struct {
	Value  float64
	Raw    string
	Null   bool
	Quoted bool
}

func NewFlexFloat(v float64) FlexFloat {
	return FlexFloat{Value: v, Raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = FlexFloat{Null: true}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = FlexFloat{Value: ParseFloat(str), Raw: str, Quoted: true}
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	v, _ := num.Float64()
	*f = FlexFloat{Value: v, Raw: num.String()}
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if f.Null && f.Raw == "" {
		return []byte("null"), nil
	}
	if f.Quoted {
		return json.Marshal(f.Raw)
	}
	if f.Raw != "" && json.Valid([]byte(f.Raw)) {
		return []byte(f.Raw), nil
	}
	return json.Marshal(f.Value)
}
