package frame

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ordered date-time grammars for recognized label text. Capture groups are
// always year, month, day, hour, minute and an optional second.
var labelGrammars = []*regexp.Regexp{
	// 2025年1月30日 15:21[:45], ASCII or fullwidth colons, whitespace-tolerant
	regexp.MustCompile(
		`(\d{4})\s*年\s*(\d{1,2})\s*月\s*(\d{1,2})\s*日\s*(\d{1,2})\s*[:：]\s*(\d{1,2})(?:\s*[:：]\s*(\d{1,2}))?`,
	),
	// 2025-01-30 15:21[:45] or 2025/01/30 15:21[:45]
	regexp.MustCompile(
		`(\d{4})[-/](\d{1,2})[-/](\d{1,2})\s+(\d{1,2}):(\d{1,2})(?::(\d{1,2}))?`,
	),
}

// extracts a calendar date-time from OCR output. Grammars are tried in
// order; a structural match with an out-of-range field (month 13, day 32)
// is a parse failure, not a match. Newlines count as spaces.
func ParseTimestamp(text string) (time.Time, bool) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, false
	}

	normalized := strings.NewReplacer("\r", " ", "\n", " ").Replace(text)

	for _, grammar := range labelGrammars {
		matches := grammar.FindStringSubmatch(normalized)
		if matches == nil {
			continue
		}
		if t, ok := buildTimestamp(matches); ok {
			return t, true
		}
	}

	return time.Time{}, false
}

func buildTimestamp(matches []string) (time.Time, bool) {
	fields := make([]int, 6)
	for i := 0; i < 6; i++ {
		if matches[i+1] == "" {
			continue // seconds default to 0
		}
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return time.Time{}, false
		}
		fields[i] = n
	}

	year, month, day := fields[0], fields[1], fields[2]
	hour, minute, sec := fields[3], fields[4], fields[5]

	// time.Date normalizes overflowing fields, so a round-trip comparison
	// rejects calendrically invalid values
	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.Local)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != sec {
		return time.Time{}, false
	}

	return t, true
}
