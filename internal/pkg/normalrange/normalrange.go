// Package normalrange evaluates a measured value against a free-text normal
// range string ("4.5-11.0", "< 200", "> 3.5", "4.5 - 11 x10^3/uL"). Abnormal
// flags normally arrive from the client; this is the server-side fallback when
// a flag is absent.
package normalrange

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rangeRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*(?:-|–|to)\s*(-?\d+(?:\.\d+)?)`)
	lessRe  = regexp.MustCompile(`^\s*<=?\s*(-?\d+(?:\.\d+)?)`)
	moreRe  = regexp.MustCompile(`^\s*>=?\s*(-?\d+(?:\.\d+)?)`)
)

// IsAbnormal reports whether value falls outside the normal range. Unparseable
// ranges or non-numeric values report false: absent evidence is not a flag.
func IsAbnormal(value, normalRange string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false
	}

	nr := strings.TrimSpace(normalRange)
	if nr == "" {
		return false
	}

	if m := lessRe.FindStringSubmatch(nr); m != nil {
		max, _ := strconv.ParseFloat(m[1], 64)
		return v > max
	}
	if m := moreRe.FindStringSubmatch(nr); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		return v < min
	}
	if m := rangeRe.FindStringSubmatch(nr); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		max, _ := strconv.ParseFloat(m[2], 64)
		return v < min || v > max
	}
	return false
}
