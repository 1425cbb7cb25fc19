// Package ui  Setup for the Leafslide application windows.
package ui

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"leafslide/internal/settings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

// App represents the whole application: the folder picker window, the
// persisted settings and the folders queued for the next slideshow.
type App struct {
	app     fyne.App
	mainWin fyne.Window

	store *settings.Store
	cfg   settings.Settings

	folders    []string
	folderList *listWithSelection
}

// Command-line flags
var settingsDirFlag = flag.String("settings-dir", "", "Directory for the settings database (default: user config dir).")

// CreateApplication is the GUI entrypoint.
func CreateApplication() {
	flag.Parse()

	a := app.NewWithID("com.github.leafslide")

	ui := &App{app: a}

	store, err := settings.Open(*settingsDirFlag, func(msg string) { log.Printf("settings: %s", msg) })
	if err != nil {
		log.Fatalf("Failed to open settings database: %v", err)
	}
	ui.store = store

	ui.cfg, err = store.Load()
	if err != nil {
		log.Printf("Warning: could not load settings, using defaults: %v", err)
	}

	// Folders given on the command line are queued right away.
	for _, arg := range flag.Args() {
		if abs, err := filepath.Abs(arg); err == nil {
			if fi, err := os.Stat(abs); err == nil && fi.IsDir() {
				ui.folders = append(ui.folders, abs)
			} else {
				log.Printf("Ignoring non-folder argument: %s", arg)
			}
		}
	}

	ui.mainWin = a.NewWindow("Leafslide")
	ui.mainWin.SetCloseIntercept(func() {
		ui.persistSettings()
		if err := ui.store.Close(); err != nil {
			log.Printf("Error closing settings database: %v", err)
		}
		ui.mainWin.Close()
	})
	ui.mainWin.SetContent(ui.buildPicker())
	ui.mainWin.Resize(fyne.NewSize(900, 600))
	ui.mainWin.CenterOnScreen()
	ui.mainWin.ShowAndRun()
}

// persistSettings writes the whole settings struct back to the store.
func (a *App) persistSettings() {
	if err := a.store.Save(a.cfg); err != nil {
		log.Printf("Error saving settings: %v", err)
	}
}
