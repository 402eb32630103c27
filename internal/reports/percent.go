package reports

import (
	"encoding/json"
	"math"
	"strconv"
)

// Percentage is a period-over-period ratio (0.25 means +25%). It can be
// non-finite by construction; JSON has no encoding for Inf or NaN, so
// those marshal as null and clients fall back to the label.
type Percentage float64

func (p Percentage) MarshalJSON() ([]byte, error) {
	f := float64(p)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Label renders the ratio for the dashboard cards as a whole percent with
// an explicit plus sign for growth. Non-finite values saturate to "+999".
func (p Percentage) Label() string {
	f := float64(p) * 100
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "+999"
	}

	formatted := strconv.FormatFloat(f, 'f', 0, 64)
	if f > 0 {
		return "+" + formatted
	}
	return formatted
}
