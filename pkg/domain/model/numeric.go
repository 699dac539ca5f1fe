package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Numeric holds a numeric field exactly as the upstream provider sent it.
// Providers mix JSON numbers, numeric strings and nulls for the same field,
// so the raw token is kept and parsed on demand.
type Numeric struct {
	raw json.RawMessage
}

// NumericOf returns a Numeric carrying a JSON number
func NumericOf(v float64) Numeric {
	return Numeric{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// NumericText returns a Numeric carrying a JSON string
func NumericText(s string) Numeric {
	raw, _ := json.Marshal(s)
	return Numeric{raw: raw}
}

// UnmarshalJSON stores the raw token
func (n *Numeric) UnmarshalJSON(data []byte) error {
	n.raw = append(n.raw[:0], data...)
	return nil
}

// MarshalJSON writes the number when it parses to a finite value and null
// otherwise
func (n Numeric) MarshalJSON() ([]byte, error) {
	if v, ok := n.Float(); ok && isFinite(v) {
		return json.Marshal(v)
	}
	return []byte("null"), nil
}

// MarshalYAML writes the number when it parses to a finite value and null
// otherwise
func (n Numeric) MarshalYAML() (any, error) {
	if v, ok := n.Float(); ok && isFinite(v) {
		return v, nil
	}
	return nil, nil
}

// IsAbsent reports whether the field was missing or null
func (n Numeric) IsAbsent() bool {
	trimmed := bytes.TrimSpace(n.raw)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

// Float parses the value the way a browser's parseFloat does: leading
// whitespace is skipped and the longest numeric prefix is used. Nulls,
// booleans, objects and absent fields do not parse.
func (n Numeric) Float() (float64, bool) {
	trimmed := bytes.TrimSpace(n.raw)
	if len(trimmed) == 0 {
		return 0, false
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, false
		}
		return parseFloatPrefix(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return parseFloatPrefix(string(trimmed))
	default:
		return 0, false
	}
}

// String returns the value for display
func (n Numeric) String() string {
	trimmed := bytes.TrimSpace(n.raw)
	if n.IsAbsent() {
		return "N/A"
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

var numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

func parseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v\u00a0\ufeff")

	switch {
	case strings.HasPrefix(s, "Infinity"), strings.HasPrefix(s, "+Infinity"):
		return math.Inf(1), true
	case strings.HasPrefix(s, "-Infinity"):
		return math.Inf(-1), true
	}

	m := numericPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// out of range still yields a signed infinity or zero
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}
