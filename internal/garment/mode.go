package garment

import "strings"

// Mode selects how aggressively Optimize fills in missing values.
type Mode int

const (
	// Professional trusts explicit values and only fills gaps with flat defaults.
	Professional Mode = iota
	// Assisted derives defaults from other fields, for example ease from fit.
	Assisted
)

func (m Mode) String() string {
	if m == Assisted {
		return "assisted"
	}
	return "professional"
}

var assistedMarkers = []string{"智能", "assist", "smart", "新手"}

// ParseMode maps a raw mode label from the form layer onto a Mode. Any label
// carrying an assisted marker selects Assisted; everything else, including
// the empty string, is Professional.
func ParseMode(label string) Mode {
	l := strings.ToLower(label)
	for _, m := range assistedMarkers {
		if strings.Contains(l, m) {
			return Assisted
		}
	}
	return Professional
}
