package dto

import (
	"fmt"
	"strings"
	"time"
)

// Date accepts both plain dates ("2006-01-02") and RFC3339 timestamps in
// request payloads, since the dashboard sends either depending on the form.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			d.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", raw)
}
