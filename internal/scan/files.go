// Package scan discovers the images a set of root folders contributes to a
// slideshow. Images are collected from leaf folders only (directories with no
// subdirectories), in natural order, so that each leaf folder behaves like one
// album in the fixed playback sequence.
package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoImages is returned by Discover when no image survives filtering across
// all roots. Playback must not start in that case.
var ErrNoImages = errors.New("no images found in the given folders")

// LoggerFunc defines a function signature for logging messages.
// This allows the caller to provide its logging mechanism.
type LoggerFunc func(message string)

// Entry is one image in the playback sequence: its absolute path and the name
// of the leaf folder that contained it.
type Entry struct {
	Path   string
	Folder string
}

// Entries is the ordered playback sequence produced by Discover.
type Entries []Entry

// Policy selects what happens to a leaf folder whose name does not match the
// folder filter pattern.
type Policy string

const (
	// ShowAll plays every image of an unmatched folder, uncapped.
	ShowAll Policy = "show_all"
	// SkipFolder contributes zero images from an unmatched folder.
	SkipFolder Policy = "skip_folder"
)

// ParsePolicy maps the persisted policy string to a Policy, defaulting to
// ShowAll for anything unrecognized.
func ParsePolicy(s string) Policy {
	if Policy(s) == SkipFolder {
		return SkipFolder
	}
	return ShowAll
}

// Options controls a discovery run.
type Options struct {
	// SkipFirst drops the first image, after ordering, from every leaf
	// folder (e.g. to omit a cover image).
	SkipFirst bool
	// Filter caps how many images a matching leaf folder contributes.
	// Nil means no per-folder cap.
	Filter *FolderFilter
	// Unmatched applies when Filter is set but does not match a folder name.
	Unmatched Policy
	// Logger receives diagnostic messages. May be nil.
	Logger LoggerFunc
}

func (o Options) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger(fmt.Sprintf(format, args...))
	}
}

// Discover walks the root folders and returns the ordered playback sequence.
// Roots are visited in natural order of their base names relative to each
// other; within a root the traversal is depth-first with subfolders in
// natural order. Unreadable directories are skipped, not fatal. Returns
// ErrNoImages when the result is empty.
func Discover(roots []string, opts Options) (Entries, error) {
	sorted := make([]string, len(roots))
	copy(sorted, roots)
	sortNaturalBase(sorted)

	var entries Entries
	for _, root := range sorted {
		collect(root, opts, &entries)
	}
	if len(entries) == 0 {
		return nil, ErrNoImages
	}
	return entries, nil
}

// collect appends the images of current's subtree to entries, depth-first.
// Only leaf directories contribute images; a directory holding both images
// and subfolders contributes nothing itself.
func collect(current string, opts Options, entries *Entries) {
	dirents, err := os.ReadDir(current)
	if err != nil {
		// Permission denied or similar: the whole subtree is silently skipped.
		opts.logf("skipping unreadable directory %s: %v", current, err)
		return
	}

	var files, folders []string
	for _, d := range dirents {
		if d.IsDir() {
			folders = append(folders, d.Name())
		} else {
			files = append(files, d.Name())
		}
	}

	if len(folders) > 0 {
		sortNatural(folders)
		for _, folder := range folders {
			collect(filepath.Join(current, folder), opts, entries)
		}
		return
	}

	var images []string
	for _, f := range files {
		if IsImage(f) {
			images = append(images, f)
		}
	}
	sortNatural(images)

	folderName := filepath.Base(filepath.Clean(current))

	limit := -1
	if opts.Filter != nil {
		if n, ok := opts.Filter.Limit(folderName); ok {
			limit = n
		} else if opts.Unmatched == SkipFolder {
			return
		}
	}

	if opts.SkipFirst && len(images) > 0 {
		images = images[1:]
	}
	if limit >= 0 && len(images) > limit {
		images = images[:limit]
	}

	for _, f := range images {
		abs, err := filepath.Abs(filepath.Join(current, f))
		if err != nil {
			abs = filepath.Join(current, f)
		}
		*entries = append(*entries, Entry{Path: abs, Folder: folderName})
	}
}

// IsImage checks if a file name has a supported image extension.
func IsImage(n string) bool {
	switch strings.ToLower(filepath.Ext(n)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff":
		return true
	default:
		return false
	}
}
