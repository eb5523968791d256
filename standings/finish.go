package standings

import (
	"math"
	"strconv"
)

// SentinelRank is the rank value of every non-numeric finish code. It sorts
// after any real finishing position; positions at or beyond it are not
// accepted as numeric.
const SentinelRank = math.MaxInt

// FinishCode is the raw value recorded for a competitor in one week: either a
// finishing position or a non-numeric code such as "DNF".
type FinishCode struct {
	numeric  bool
	position int
	code     string
}

func NumericPosition(position int) FinishCode {
	return FinishCode{numeric: true, position: position}
}

func NonNumericCode(code string) FinishCode {
	return FinishCode{code: code}
}

func (f FinishCode) IsNumeric() bool {
	return f.numeric
}

// Position returns the finishing position and whether the code is numeric.
func (f FinishCode) Position() (int, bool) {
	return f.position, f.numeric
}

// RankValue is the only value used when comparing the quality of two finishes.
func (f FinishCode) RankValue() int {
	if f.numeric {
		return f.position
	}
	return SentinelRank
}

// Label is the display form: "1st", "2nd", ... for positions, the code
// verbatim otherwise.
func (f FinishCode) Label() string {
	if f.numeric {
		return Ordinal(f.position)
	}
	return f.code
}

func (f FinishCode) String() string {
	return f.Label()
}

// Ordinal formats n as an English ordinal ("1st", "12th", "23rd").
func Ordinal(n int) string {
	suffix := "th"
	switch abs(n) % 100 {
	case 11, 12, 13:
	default:
		switch abs(n) % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
