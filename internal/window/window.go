// Package window wraps the SDL2 window the Vulkan context is created for.
package window

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
)

// idleWait bounds how long PumpEvents blocks when no event is pending, so
// the idle loop does not spin a core.
const idleWait = 16

type Window struct {
	window *sdl.Window
}

// Open initializes SDL video and creates a visible, non-resizable window
// flagged for Vulkan. SDL creates no GL context for such windows.
func Open(title string, width, height int32) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "initwindow")
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "initwindow")
	}

	return &Window{window: window}, nil
}

// RequiredExtensions lists the instance extensions the window's
// presentation surface needs.
func (w *Window) RequiredExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

// ProcAddr is vkGetInstanceProcAddr from the Vulkan library SDL loaded.
func (w *Window) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

// PumpEvents drains pending events and reports whether the user asked to
// close the window.
func (w *Window) PumpEvents() bool {
	closeRequested := false
	for event := sdl.WaitEventTimeout(idleWait); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			closeRequested = true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_CLOSE {
				closeRequested = true
			}
		}
	}
	return closeRequested
}

func (w *Window) Destroy() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
}
