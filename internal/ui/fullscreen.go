package ui

import "fyne.io/fyne/v2"

// presentFullscreen is the one place window maximization lives. Fyne gives
// every desktop target the same call; a platform needing special treatment
// gets a build-tagged variant of this file.
func presentFullscreen(w fyne.Window) {
	w.SetFullScreen(true)
}
