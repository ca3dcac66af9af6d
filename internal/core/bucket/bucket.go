// Package bucket contains the pure business logic for duration bucketing.
// This is part of the Functional Core - no I/O, only pure functions.
package bucket

// Bucket labels shared by both schemes. The en-dash strings are part of the
// rendered artifact contract and must not change.
const (
	LabelOpen       = "Open"
	LabelZero       = "0 hours"
	LabelUpToDay    = "0–24 hours"
	LabelOneToThree = "1–3 days"
	LabelThreeToSev = "3–7 days"
	LabelOneToSeven = "1–7 days"
	LabelOverWeek   = "7+ days"
)

// FiveOrder is the display order of the five-way scheme, fastest first.
var FiveOrder = []string{
	LabelZero,
	LabelUpToDay,
	LabelOneToThree,
	LabelThreeToSev,
	LabelOverWeek,
	LabelOpen,
}

// FourOrder is the display order of the four-way scheme, fastest first.
var FourOrder = []string{
	LabelZero,
	LabelUpToDay,
	LabelOneToSeven,
	LabelOverWeek,
	LabelOpen,
}

// Five maps a resolution duration to the five-way bucket scheme.
// nil means the request is still open. Band boundaries are inclusive
// on the upper end: exactly 24 hours falls in "0–24 hours", exactly
// 72 in "1–3 days", exactly 168 in "3–7 days".
func Five(hours *float64) string {
	switch {
	case hours == nil:
		return LabelOpen
	case *hours == 0:
		return LabelZero
	case *hours <= 24:
		return LabelUpToDay
	case *hours <= 72:
		return LabelOneToThree
	case *hours <= 168:
		return LabelThreeToSev
	default:
		return LabelOverWeek
	}
}

// Four maps a resolution duration to the four-way bucket scheme used by the
// geo scatter. It intentionally differs from Five (no 1–3/3–7 day split);
// keep the two schemes separate.
func Four(hours *float64) string {
	switch {
	case hours == nil:
		return LabelOpen
	case *hours == 0:
		return LabelZero
	case *hours <= 24:
		return LabelUpToDay
	case *hours <= 168:
		return LabelOneToSeven
	default:
		return LabelOverWeek
	}
}

// FiveIndex returns the position of a five-way label in FiveOrder.
// Unknown labels sort last.
func FiveIndex(label string) int {
	for i, l := range FiveOrder {
		if l == label {
			return i
		}
	}
	return len(FiveOrder)
}
