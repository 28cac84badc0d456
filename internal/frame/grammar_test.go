package frame

import (
	"testing"
	"time"
)

func TestParseTimestampValid(t *testing.T) {
	tests := []struct {
		text string
		want time.Time
	}{
		{
			"2025年1月30日 15:21",
			time.Date(2025, 1, 30, 15, 21, 0, 0, time.Local),
		},
		{
			"2024年5月1日 03:05:07",
			time.Date(2024, 5, 1, 3, 5, 7, 0, time.Local),
		},
		// fullwidth colons, no space before the clock
		{
			"2023年12月31日15：30：45",
			time.Date(2023, 12, 31, 15, 30, 45, 0, time.Local),
		},
		// embedded newline counts as a space
		{
			"2023年12月31日\n15:30",
			time.Date(2023, 12, 31, 15, 30, 0, 0, time.Local),
		},
		{
			"2025-01-30 15:21",
			time.Date(2025, 1, 30, 15, 21, 0, 0, time.Local),
		},
		{
			"2024/05/01 03:05:07",
			time.Date(2024, 5, 1, 3, 5, 7, 0, time.Local),
		},
		// OCR noise around the label
		{
			"CAM01 2025年1月30日 15:21 REC",
			time.Date(2025, 1, 30, 15, 21, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.text)
			if !ok {
				t.Fatalf("ParseTimestamp(%q) did not match", tt.text)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	tests := []string{
		"not a timestamp",
		"",
		"   \n ",
		// structural match, out-of-range calendar fields
		"2024年13月1日 15:00",
		"2024年2月30日 15:00",
		"2024-02-30 10:00",
		"2024-05-01 25:00",
		// date without a clock
		"2024年5月1日",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			if got, ok := ParseTimestamp(text); ok {
				t.Errorf("ParseTimestamp(%q) = %v, want no match", text, got)
			}
		})
	}
}
