package ui

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"leafslide/internal/scan"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/validation"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const (
	policyShowAllLabel    = "Show all of its images"
	policySkipFolderLabel = "Skip the folder"
)

// listWithSelection wraps widget.List and remembers which row is selected,
// which the stock widget does not expose.
type listWithSelection struct {
	*widget.List
	selected int
}

func (a *App) newFolderList() *listWithSelection {
	l := &listWithSelection{selected: -1}
	l.List = widget.NewList(
		func() int { return len(a.folders) },
		func() fyne.CanvasObject { return widget.NewLabel("folder path") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(a.folders[id])
		},
	)
	l.OnSelected = func(id widget.ListItemID) { l.selected = id }
	l.OnUnselected = func(widget.ListItemID) { l.selected = -1 }
	return l
}

// buildPicker assembles the folder picker window: the folder list with its
// add/remove/clear buttons, the interval, skip-first, filter pattern and
// unmatched-policy controls, and the start button.
func (a *App) buildPicker() fyne.CanvasObject {
	a.folderList = a.newFolderList()

	addBtn := widget.NewButton("Add Folder", a.addFolder)
	removeBtn := widget.NewButton("Remove Selected", a.removeSelectedFolder)
	clearBtn := widget.NewButton("Clear Folders", a.clearFolders)
	buttons := container.NewVBox(addBtn, removeBtn, clearBtn)

	folderBox := container.NewBorder(
		widget.NewLabel("Image folders:"),
		nil, nil, buttons,
		a.folderList,
	)

	intervalEntry := widget.NewEntry()
	intervalEntry.SetText(strconv.Itoa(a.cfg.IntervalSeconds))
	intervalEntry.Validator = validation.NewRegexp(`^[1-9][0-9]*$`, "interval must be a positive whole number")
	intervalEntry.OnChanged = func(text string) {
		if n, err := strconv.Atoi(text); err == nil && n > 0 {
			a.cfg.IntervalSeconds = n
		}
	}

	skipCheck := widget.NewCheck("Skip the first image of every folder", func(checked bool) {
		a.cfg.SkipFirstImage = checked
	})
	skipCheck.SetChecked(a.cfg.SkipFirstImage)

	patternEntry := widget.NewEntry()
	patternEntry.SetPlaceHolder("e.g. Full{num}Pieces")
	patternEntry.SetText(a.cfg.FilterPattern)
	patternEntry.OnChanged = func(text string) { a.cfg.FilterPattern = text }

	policyRadio := widget.NewRadioGroup(
		[]string{policyShowAllLabel, policySkipFolderLabel},
		func(selected string) {
			if selected == policySkipFolderLabel {
				a.cfg.UnmatchedPolicy = string(scan.SkipFolder)
			} else {
				a.cfg.UnmatchedPolicy = string(scan.ShowAll)
			}
		},
	)
	policyRadio.Horizontal = true
	if scan.ParsePolicy(a.cfg.UnmatchedPolicy) == scan.SkipFolder {
		policyRadio.SetSelected(policySkipFolderLabel)
	} else {
		policyRadio.SetSelected(policyShowAllLabel)
	}

	startBtn := widget.NewButton("Start Slideshow", func() { a.startSlideshow(intervalEntry.Text) })
	startBtn.Importance = widget.HighImportance

	form := container.NewVBox(
		container.NewHBox(widget.NewLabel("Display interval (seconds):"), intervalEntry),
		skipCheck,
		container.NewHBox(widget.NewLabel("Per-folder image count pattern (use {num}):"), patternEntry),
		container.NewHBox(widget.NewLabel("When a folder name does not match:"), policyRadio),
		startBtn,
	)

	return container.NewBorder(nil, form, nil, nil, folderBox)
}

func (a *App) addFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWin)
			return
		}
		if uri == nil {
			return // cancelled
		}
		path := uri.Path()
		for _, existing := range a.folders {
			if existing == path {
				dialog.ShowInformation("Add Folder", "Folder already added.", a.mainWin)
				return
			}
		}
		a.folders = append(a.folders, path)
		a.folderList.Refresh()
	}, a.mainWin)
}

func (a *App) removeSelectedFolder() {
	idx := a.folderList.selected
	if idx < 0 || idx >= len(a.folders) {
		return
	}
	a.folders = append(a.folders[:idx], a.folders[idx+1:]...)
	a.folderList.selected = -1
	a.folderList.UnselectAll()
	a.folderList.Refresh()
}

func (a *App) clearFolders() {
	a.folders = nil
	a.folderList.selected = -1
	a.folderList.UnselectAll()
	a.folderList.Refresh()
}

// startSlideshow validates the form, runs discovery and opens the slideshow
// window. Discovery failures abort the start; the picker stays open.
func (a *App) startSlideshow(intervalText string) {
	if len(a.folders) == 0 {
		dialog.ShowError(fmt.Errorf("select at least one image folder first"), a.mainWin)
		return
	}

	intervalSec, err := strconv.Atoi(intervalText)
	if err != nil || intervalSec <= 0 {
		dialog.ShowError(fmt.Errorf("enter a valid positive number of seconds for the interval"), a.mainWin)
		return
	}
	a.cfg.IntervalSeconds = intervalSec

	filter, err := scan.CompileFilter(a.cfg.FilterPattern)
	if err != nil {
		dialog.ShowError(err, a.mainWin)
		return
	}

	a.persistSettings()

	opts := scan.Options{
		SkipFirst: a.cfg.SkipFirstImage,
		Filter:    filter,
		Unmatched: scan.ParsePolicy(a.cfg.UnmatchedPolicy),
		Logger:    func(msg string) { log.Printf("scan: %s", msg) },
	}
	roots := make([]string, len(a.folders))
	copy(roots, a.folders)

	// Discovery walks the disk; keep it off the UI thread.
	go func() {
		entries, err := scan.Discover(roots, opts)
		fyne.Do(func() {
			if err != nil {
				dialog.ShowError(err, a.mainWin)
				return
			}
			newSession(a, entries, time.Duration(intervalSec)*time.Second).run()
		})
	}()
}
