package scan

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NumMarker is the literal a filter pattern must contain. It marks where the
// per-folder image count appears in a leaf folder's name, e.g. "Full{num}Pieces".
const NumMarker = "{num}"

// ErrMissingNumMarker is returned by CompileFilter for patterns without the
// {num} marker.
var ErrMissingNumMarker = errors.New("filter pattern must contain the {num} marker")

// FolderFilter caps how many images a leaf folder contributes, based on a
// number embedded in the folder's name.
type FolderFilter struct {
	re *regexp.Regexp
}

// CompileFilter builds a FolderFilter from a user pattern. The {num} marker is
// replaced by a named numeric capture group and the result compiled as a
// regular expression. An empty pattern yields a nil filter.
func CompileFilter(pattern string) (*FolderFilter, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, nil
	}
	if !strings.Contains(pattern, NumMarker) {
		return nil, ErrMissingNumMarker
	}
	expanded := strings.ReplaceAll(pattern, NumMarker, `(?P<num>\d+)`)
	re, err := regexp.Compile(expanded)
	if err != nil {
		return nil, fmt.Errorf("invalid filter pattern: %w", err)
	}
	return &FolderFilter{re: re}, nil
}

// Limit matches the filter against a leaf folder's base name. On a match it
// returns the captured count and true; otherwise 0 and false.
func (f *FolderFilter) Limit(folderName string) (int, bool) {
	m := f.re.FindStringSubmatch(folderName)
	if m == nil {
		return 0, false
	}
	idx := f.re.SubexpIndex("num")
	if idx < 0 || idx >= len(m) {
		return 0, false
	}
	n, err := strconv.Atoi(m[idx])
	if err != nil {
		// Digit run too large for an int; treat the folder as unmatched
		// rather than failing the whole discovery.
		return 0, false
	}
	return n, true
}

// String returns the original-style pattern for display.
func (f *FolderFilter) String() string {
	if f == nil {
		return ""
	}
	return f.re.String()
}
