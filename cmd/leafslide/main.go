package main

import (
	"leafslide/internal/ui"
)

func main() {
	ui.CreateApplication()
}
