package instagram

import (
	"regexp"
	"strconv"
	"strings"
)

// A suffix only counts when it ends the token: "3M" is a multiplier, "3 more" is not.
var leadingCount = regexp.MustCompile(`^\s*(\d+)(?:\.(\d+))?(?:([KkMmBb])\b)?`)

// ParseCount reads the leading number of text, honoring K/M/B suffixes.
// Thousands separators are ignored and fractions truncated. Unparsable text yields 0.
func ParseCount(text string) int64 {
	n, _ := parseCount(text)
	return n
}

// parseCount is ParseCount that also reports whether text began with a number.
func parseCount(text string) (int64, bool) {
	s := strings.ReplaceAll(text, ",", "")
	m := leadingCount.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	whole, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}

	var mult int64 = 1
	switch strings.ToUpper(m[3]) {
	case "K":
		mult = 1_000
	case "M":
		mult = 1_000_000
	case "B":
		mult = 1_000_000_000
	}

	n := whole * mult
	if frac := m[2]; frac != "" && mult > 1 {
		// Integer arithmetic keeps 2.5K at exactly 2500.
		digits := len(frac)
		if digits > 9 {
			frac, digits = frac[:9], 9
		}
		f, _ := strconv.ParseInt(frac, 10, 64)
		n += f * mult / pow10(digits)
	}
	return n, true
}

func pow10(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

var (
	hashtagPattern = regexp.MustCompile(`#[\w\x{0590}-\x{05ff}]+`)
	mentionPattern = regexp.MustCompile(`@[\w.]+`)
)

func extractHashtags(text string) []string {
	if out := hashtagPattern.FindAllString(text, -1); out != nil {
		return out
	}
	return []string{}
}

func extractMentions(text string) []string {
	if out := mentionPattern.FindAllString(text, -1); out != nil {
		return out
	}
	return []string{}
}
