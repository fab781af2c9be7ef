package main

import (
	"image"
	"image/color"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/n-ulricksen/retrocore/bus"
)

// scale is the window magnification factor applied to every system's
// native resolution, matching n-ulricksen-nes's display.go convention of
// rendering into a fixed-size image.RGBA and scaling it up with a pixel
// matrix rather than resizing the window per system.
const scale = 2.0

// runDisplay opens a pixelgl window sized for the machine's native
// resolution and drives RunFrame/KeyDown/KeyUp/SetJoystick once per host
// frame, mirroring n-ulricksen-nes's display.go + controller.go polling
// loop generalised from one hardwired NES to any bus.Machine.
func runDisplay(m bus.Machine, title string) {
	cfg := m.VideoConfig()
	rgba := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))

	win, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  "retrocore - " + title,
		Bounds: pixel.R(0, 0, float64(cfg.Width)*scale, float64(cfg.Height)*scale),
		VSync:  true,
	})
	if err != nil {
		panic(err)
	}

	for !win.Closed() {
		pollKeys(win, m)

		frame := m.RunFrame()
		blitFrame(rgba, frame.Pixels, cfg.Width, cfg.Height)

		win.Clear(colornames.Black)
		pic := pixel.PictureDataFromImage(rgba)
		sprite := pixel.NewSprite(pic, pic.Bounds())
		mat := pixel.IM.
			ScaledXY(pixel.ZV, pixel.V(scale, scale)).
			Moved(win.Bounds().Center())
		sprite.Draw(win, mat)
		win.Update()
	}
}

// blitFrame copies an ARGB32 pixel buffer (row-major, top-down) into an
// image.RGBA, converting to pixel's bottom-up, alpha-premultiplied
// expectations.
func blitFrame(img *image.RGBA, pixels []uint32, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := pixels[y*w+x]
			c := color.RGBA{
				A: uint8(p >> 24),
				R: uint8(p >> 16),
				G: uint8(p >> 8),
				B: uint8(p),
			}
			img.SetRGBA(x, h-1-y, c)
		}
	}
}
