package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// hoverArea is a custom widget that displays its content and reports pointer
// movement over it. The slideshow uses it to show and hide the control panel.
type hoverArea struct {
	widget.BaseWidget
	content fyne.CanvasObject
	onMoved func(fyne.Position)
}

func newHoverArea(content fyne.CanvasObject, onMoved func(fyne.Position)) *hoverArea {
	h := &hoverArea{content: content, onMoved: onMoved}
	h.ExtendBaseWidget(h)
	return h
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (h *hoverArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.content)
}

func (h *hoverArea) MouseIn(ev *desktop.MouseEvent) {
	if h.onMoved != nil {
		h.onMoved(ev.Position)
	}
}

func (h *hoverArea) MouseMoved(ev *desktop.MouseEvent) {
	if h.onMoved != nil {
		h.onMoved(ev.Position)
	}
}

func (h *hoverArea) MouseOut() {}
