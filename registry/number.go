package registry

import (
	"fmt"
	"time"
)

// FormatReportNumber renders "PREFIX-YEAR-NNNNN". The year is the wall
// clock at format time while the sequence counter is global and never
// resets, so two reports generated in different calendar years can show
// non-adjacent-looking numbers despite adjacent sequence values. That is
// expected, not a bug.
func FormatReportNumber(seq int, prefix string, pad int) string {
	return fmt.Sprintf("%s-%d-%0*d", prefix, time.Now().Year(), pad, seq)
}
