package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// parseFieldsJSON parses the JSON response from the extraction endpoint.
// The endpoint is schema-constrained but models occasionally wrap output in
// markdown fences or prose, so the object boundaries are located first.
func parseFieldsJSON(text string) (*Fields, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("%w: no JSON object found", ErrInvalidResponse)
	}
	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("%w: malformed JSON object", ErrInvalidResponse)
	}
	text = text[startIdx : endIdx+1]

	var fields Fields
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	fields.Vendor = strings.TrimSpace(fields.Vendor)
	fields.Currency = strings.TrimSpace(fields.Currency)
	fields.Category = strings.TrimSpace(fields.Category)
	fields.Date = normalizeDate(fields.Date)

	return &fields, nil
}

// normalizeDate reshapes recognizable date layouts into YYYY-MM-DD. Empty
// stays empty (the instruction tells the model to use an empty string for an
// unknown date); unrecognized strings pass through for the user to correct.
func normalizeDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", date); err == nil {
		return date
	}
	layouts := []string{
		"2006/01/02",
		"01/02/2006",
		"02-01-2006",
	}
	for _, layout := range layouts {
		if d, err := time.Parse(layout, date); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return date
}
