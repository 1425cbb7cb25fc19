package scan

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// naturalLess compares two names the way a human reads them: the names are
// split into alternating runs of digits and non-digits, digit runs compare as
// integers and text runs compare case-insensitively. "img2" sorts before
// "img10".
func naturalLess(a, b string) bool {
	ar, br := splitRuns(a), splitRuns(b)
	for i := 0; i < len(ar) && i < len(br); i++ {
		x, y := ar[i], br[i]
		if x == y {
			continue
		}
		if isDigits(x) && isDigits(y) {
			// Compare digit runs as integers: strip leading zeros, then a
			// longer run is a bigger number. Numerically equal runs ("007"
			// vs "7") defer to the remaining runs.
			xn, yn := strings.TrimLeft(x, "0"), strings.TrimLeft(y, "0")
			if xn == yn {
				continue
			}
			if len(xn) != len(yn) {
				return len(xn) < len(yn)
			}
			return xn < yn
		}
		xl, yl := strings.ToLower(x), strings.ToLower(y)
		if xl != yl {
			return xl < yl
		}
	}
	return len(ar) < len(br)
}

// splitRuns splits a name into maximal runs of digits and non-digits.
func splitRuns(s string) []string {
	var runs []string
	start := 0
	var inDigits bool
	for i, r := range s {
		d := unicode.IsDigit(r)
		if i == 0 {
			inDigits = d
			continue
		}
		if d != inDigits {
			runs = append(runs, s[start:i])
			start = i
			inDigits = d
		}
	}
	if len(s) > 0 {
		runs = append(runs, s[start:])
	}
	return runs
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// sortNatural sorts names in place in natural order.
func sortNatural(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})
}

// sortNaturalBase sorts paths in place in natural order of their base names.
func sortNaturalBase(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return naturalLess(filepath.Base(filepath.Clean(paths[i])), filepath.Base(filepath.Clean(paths[j])))
	})
}
