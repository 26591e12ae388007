package model

import (
	"strconv"
	"strings"
)

// Numeric is a money value that tolerates loosely-typed input. Forms submit
// prices as strings; anything that does not parse becomes 0 instead of
// rejecting the record.
type Numeric float64

func (n *Numeric) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*n = 0
		return nil
	}
	raw = strings.Trim(raw, `"`)
	*n = ParseNumeric(raw)
	return nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(n), 'f', -1, 64)), nil
}

// ParseNumeric applies the same leniency to values coming from spreadsheet
// cells and import rows.
func ParseNumeric(raw string) Numeric {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return Numeric(parsed)
}
