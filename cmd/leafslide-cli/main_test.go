package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leafslide/internal/scan"
	"leafslide/internal/settings"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(settings.Open)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeImageTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for folder, names := range map[string][]string{
		"Full2Pieces": {"p1.png", "p2.png", "p3.png"},
		"Holiday":     {"h1.png", "h2.png"},
	} {
		dir := filepath.Join(root, folder)
		require.NoError(t, os.MkdirAll(dir, 0755))
		for _, n := range names {
			require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644))
		}
	}
	return root
}

func TestScanCommand(t *testing.T) {
	root := writeImageTree(t)

	out, err := executeCommand(t, "scan", root)
	require.NoError(t, err)
	assert.Contains(t, out, "5 images in 2 folders")
	assert.Contains(t, out, "Full2Pieces | ")
	assert.Contains(t, out, "Holiday | ")
}

func TestScanCommandWithPattern(t *testing.T) {
	root := writeImageTree(t)

	out, err := executeCommand(t, "scan", root, "--pattern", "Full{num}Pieces")
	require.NoError(t, err)
	// Full2Pieces is capped at 2 images; Holiday does not match and shows all.
	assert.Contains(t, out, "4 images in 2 folders")
	assert.NotContains(t, out, "p3.png")
}

func TestScanCommandSkipUnmatched(t *testing.T) {
	root := writeImageTree(t)

	out, err := executeCommand(t, "scan", root,
		"--pattern", "Full{num}Pieces", "--unmatched", "skip_folder")
	require.NoError(t, err)
	assert.Contains(t, out, "2 images in 1 folders")
	assert.NotContains(t, out, "Holiday")
}

func TestScanCommandSkipFirst(t *testing.T) {
	root := writeImageTree(t)

	out, err := executeCommand(t, "scan", root, "--skip-first")
	require.NoError(t, err)
	assert.Contains(t, out, "3 images in 2 folders")
	assert.NotContains(t, out, "p1.png")
	assert.NotContains(t, out, "h1.png")
}

func TestScanCommandNoImages(t *testing.T) {
	_, err := executeCommand(t, "scan", t.TempDir())
	assert.Error(t, err)
}

func TestScanCommandRejectsBadPattern(t *testing.T) {
	_, err := executeCommand(t, "scan", t.TempDir(), "--pattern", "NoMarker")
	assert.Error(t, err)
}

func TestScanCommandRequiresArgs(t *testing.T) {
	_, err := executeCommand(t, "scan")
	assert.Error(t, err)
}

func TestConfigShowDefaults(t *testing.T) {
	dbDir := t.TempDir()

	out, err := executeCommand(t, "config", "show", "--dbdir", dbDir)
	require.NoError(t, err)
	assert.Contains(t, out, "is_looping = true")
	assert.Contains(t, out, "interval_seconds = 8")
	assert.Contains(t, out, `handle_unmatched = "show_all"`)
}

func TestConfigSetAndShow(t *testing.T) {
	dbDir := t.TempDir()

	out, err := executeCommand(t, "config", "set", "interval_seconds", "15", "--dbdir", dbDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Set interval_seconds to 15")

	_, err = executeCommand(t, "config", "set", "regex_pattern", "Full{num}Pieces", "--dbdir", dbDir)
	require.NoError(t, err)

	out, err = executeCommand(t, "config", "show", "--dbdir", dbDir)
	require.NoError(t, err)
	assert.Contains(t, out, "interval_seconds = 15")
	assert.Contains(t, out, `regex_pattern = "Full{num}Pieces"`)
}

func TestCountFoldersDistinct(t *testing.T) {
	entries := scan.Entries{
		{Path: "/root1/pics/a.png", Folder: "pics"},
		{Path: "/root1/zebra/z.png", Folder: "zebra"},
		{Path: "/root2/pics/b.png", Folder: "pics"},
	}
	// pics reappears after zebra but is still one folder.
	assert.Equal(t, 2, countFolders(entries))
	assert.Zero(t, countFolders(nil))
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	dbDir := t.TempDir()

	_, err := executeCommand(t, "config", "set", "is_looping", "maybe", "--dbdir", dbDir)
	assert.Error(t, err)

	_, err = executeCommand(t, "config", "set", "font_size", "12", "--dbdir", dbDir)
	assert.Error(t, err)
}
