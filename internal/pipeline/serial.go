package pipeline

import "fmt"

// Display-number prefixes. These are presentation-only identifiers
// computed from a record's current position in its list; they are
// recomputed on every render and never used as join keys.
const (
	SerialPrefixEnquiry   = "PM"
	SerialPrefixOrder     = "OD"
	SerialPrefixReceiving = "RO"
	SerialPrefixFollowUp  = "FLW"
)

// Serial formats a zero-based position as a display number, e.g.
// Serial("PM", 0) == "PM-001".
func Serial(prefix string, index int) string {
	return fmt.Sprintf("%s-%03d", prefix, index+1)
}
