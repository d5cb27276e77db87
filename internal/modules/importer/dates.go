package importer

import (
	"fmt"
	"strings"
	"time"
)

// DateParseError reports text that matched none of the accepted date
// encodings, carrying the original input for row-level error messages.
type DateParseError struct {
	Input string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unrecognized date %q (want YYYY-MM-DD, MM/DD/YYYY or DD-MM-YYYY)", e.Input)
}

// dateLayouts in resolution order: ISO first (unambiguous), then US
// slashes, then day-first dashes.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02-01-2006",
}

// NormalizeDate parses one of the three accepted textual encodings into
// a calendar date. Import sources are uncontrolled, hence the
// permissiveness; interactive forms use the canonical ISO format only.
// Invalid calendar dates (month 13, day 32) are rejected, not rolled
// over.
func NormalizeDate(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, &DateParseError{Input: text}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &DateParseError{Input: text}
}
