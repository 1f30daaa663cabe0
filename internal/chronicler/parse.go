package chronicler

import "strconv"

// parseHP parses an archive hit-point value. The source switched from JSON
// numbers to decimal strings mid-era, so both forms arrive as strings here.
func parseHP(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
