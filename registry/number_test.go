package registry

import (
	"fmt"
	"testing"
	"time"
)

func TestFormatReportNumber(t *testing.T) {
	year := time.Now().Year()
	cases := []struct {
		seq      int
		prefix   string
		pad      int
		expected string
	}{
		{7, "INF", 5, fmt.Sprintf("INF-%d-00007", year)},
		{1, "INF", 5, fmt.Sprintf("INF-%d-00001", year)},
		{12345, "INF", 5, fmt.Sprintf("INF-%d-12345", year)},
		{123456, "INF", 5, fmt.Sprintf("INF-%d-123456", year)},
		{3, "REP", 3, fmt.Sprintf("REP-%d-003", year)},
	}
	for _, tc := range cases {
		got := FormatReportNumber(tc.seq, tc.prefix, tc.pad)
		if got != tc.expected {
			t.Fatalf("FormatReportNumber(%d, %q, %d) expected %s, got %s", tc.seq, tc.prefix, tc.pad, tc.expected, got)
		}
	}
}
