package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"leafslide/internal/imageio"
	"leafslide/internal/panel"
	"leafslide/internal/playback"
	"leafslide/internal/scan"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// session is one running slideshow: its window, the playback scheduler and
// the floating control panel.
type session struct {
	ui  *App
	win fyne.Window

	image         *canvas.Image
	counterLabel  *widget.Label
	intervalLabel *widget.Label
	pauseBtn      *widget.Button
	loopBtn       *widget.Button
	panelBox      *fyne.Container

	panelCtl *panel.Controller
	sched    *playback.Scheduler

	// renderSeq makes overlapping renders last-call-wins: a decode that
	// finishes after a newer one started must not reach the screen.
	renderSeq atomic.Int64
}

func newSession(ui *App, entries scan.Entries, interval time.Duration) *session {
	s := &session{ui: ui}
	s.win = ui.app.NewWindow("Leafslide")

	s.image = &canvas.Image{}
	s.image.FillMode = canvas.ImageFillContain

	s.sched = playback.NewScheduler(entries, interval, ui.cfg.Looping, playback.Callbacks{
		Render:          s.render,
		Progress:        s.onProgress,
		IntervalChanged: s.onIntervalChanged,
		LoopChanged:     s.onLoopChanged,
		Stopped:         s.onStopped,
	}, func(msg string) { log.Printf("playback: %s", msg) })

	s.panelCtl = panel.NewController(s.panelBoxShow, s.panelBoxHide)

	s.win.SetContent(s.buildContent(len(entries)))
	s.bindKeys()
	s.win.SetCloseIntercept(func() { s.sched.Stop() })
	presentFullscreen(s.win)
	return s
}

// run shows the window and starts playback. The first render happens off the
// UI thread like every later one.
func (s *session) run() {
	s.win.Show()
	go s.sched.Start()
}

func (s *session) buildContent(total int) fyne.CanvasObject {
	s.counterLabel = widget.NewLabel(fmt.Sprintf("0/%d", total))
	s.intervalLabel = widget.NewLabel(fmt.Sprintf("Delay = %d", int(s.sched.Interval()/time.Second)))

	slider := widget.NewSlider(1, 60)
	slider.Step = 1
	slider.SetValue(float64(s.sched.Interval() / time.Second))
	slider.OnChanged = func(v float64) {
		if err := s.sched.SetInterval(time.Duration(v) * time.Second); err != nil {
			log.Printf("interval rejected: %v", err)
		}
	}

	prevBtn := widget.NewButton("Previous", func() { go s.sched.Retreat() })
	s.pauseBtn = widget.NewButton("Pause", s.togglePause)
	nextBtn := widget.NewButton("Next", func() { go s.sched.Advance() })
	s.loopBtn = widget.NewButton(loopLabel(s.sched.IsLooping()), func() { s.sched.ToggleLoop() })
	exitBtn := widget.NewButton("Exit", func() { s.sched.Stop() })

	s.panelBox = container.NewHBox(
		s.counterLabel,
		s.intervalLabel,
		container.NewGridWrap(fyne.NewSize(120, 36), slider),
		prevBtn,
		s.pauseBtn,
		nextBtn,
		s.loopBtn,
		exitBtn,
	)
	s.panelBox.Hide()

	surface := newHoverArea(s.image, s.onPointerMove)
	overlay := container.NewVBox(
		layout.NewSpacer(),
		container.NewHBox(layout.NewSpacer(), s.panelBox, layout.NewSpacer()),
	)
	return container.NewStack(surface, overlay)
}

func (s *session) bindKeys() {
	s.win.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyRight:
			go s.sched.Advance()
		case fyne.KeyLeft:
			go s.sched.Retreat()
		case fyne.KeySpace:
			s.togglePause()
		case fyne.KeyQ, fyne.KeyEscape:
			s.sched.Stop()
		}
	})
}

func (s *session) togglePause() {
	paused := s.sched.TogglePause()
	if paused {
		s.pauseBtn.SetText("Resume")
	} else {
		s.pauseBtn.SetText("Pause")
	}
}

func loopLabel(looping bool) string {
	if looping {
		return "Looping"
	}
	return "Play once"
}

// render is the scheduler's display callback. It runs on the scheduler's
// goroutine: decode here, hand the result to the UI thread, and report decode
// failures so playback skips past bad files.
func (s *session) render(path, folder string, index, total int) error {
	seq := s.renderSeq.Add(1)

	img, info, err := imageio.Load(path)
	if err != nil {
		return err
	}
	log.Printf("displaying %s (%dx%d, %d bytes)", path, info.Width, info.Height, info.Size)
	if taken, ok := info.EXIFData["DateTime"]; ok {
		log.Printf("  taken %s", taken)
	}

	fyne.Do(func() {
		if s.renderSeq.Load() != seq {
			return // a newer render has superseded this one
		}
		s.image.Image = img
		s.image.Refresh()
		s.win.SetTitle(fmt.Sprintf("%s | %s", folder, filepath.Base(path)))
	})
	return nil
}

func (s *session) onProgress(shown, total int) {
	fyne.Do(func() {
		s.counterLabel.SetText(fmt.Sprintf("%d/%d", shown, total))
	})
}

// onIntervalChanged reports the scheduler's accepted interval back to the
// settings owner and refreshes the panel label.
func (s *session) onIntervalChanged(seconds int) {
	s.ui.cfg.IntervalSeconds = seconds
	s.ui.persistSettings()
	fyne.Do(func() {
		s.intervalLabel.SetText(fmt.Sprintf("Delay = %d", seconds))
	})
}

func (s *session) onLoopChanged(looping bool) {
	s.ui.cfg.Looping = looping
	s.ui.persistSettings()
	fyne.Do(func() {
		s.loopBtn.SetText(loopLabel(looping))
	})
}

func (s *session) onStopped() {
	fyne.Do(func() {
		s.win.Close()
	})
}

// onPointerMove feeds the panel visibility controller. Coordinates are
// relative to the display surface, which fills the window content.
func (s *session) onPointerMove(pos fyne.Position) {
	size := s.win.Canvas().Size()
	surface := panel.Rect{Width: size.Width, Height: size.Height}

	pp := fyne.CurrentApp().Driver().AbsolutePositionForObject(s.panelBox)
	ps := s.panelBox.Size()
	panelRect := panel.Rect{X: pp.X, Y: pp.Y, Width: ps.Width, Height: ps.Height}

	s.panelCtl.Update(pos.X, pos.Y, surface, panelRect)
}

func (s *session) panelBoxShow() { s.panelBox.Show() }
func (s *session) panelBoxHide() { s.panelBox.Hide() }
