package spectrum

import "github.com/n-ulricksen/retrocore/ula"

const (
	screenW = 256
	screenH = 192
	borderW = 32 // border pixels on each side
	frameW  = screenW + borderW*2
	frameH  = screenH + borderW*2
)

// spectrumPalette is the 16-colour ZX Spectrum palette (8 normal + 8
// bright), indexed by a 3-bit RGB triple plus the bright bit, packed as
// 0xAARRGGBB.
var spectrumPalette = [16]uint32{
	0xFF000000, 0xFF0000CD, 0xFFCD0000, 0xFFCD00CD,
	0xFF00CD00, 0xFF00CDCD, 0xFFCDCD00, 0xFFCDCDCD,
	0xFF000000, 0xFF0000FF, 0xFFFF0000, 0xFFFF00FF,
	0xFF00FF00, 0xFF00FFFF, 0xFFFFFF00, 0xFFFFFFFF,
}

// renderFrame paints the full 256x192 display plus its 32px border into a
// flat framebuffer, resolving attribute FLASH against the ULA's current
// flash phase. This is software rendering from memory, not a faithful
// reproduction of the ULA's own per-T-state pixel fetch (see ULA's doc
// comment: it never owns pixel data itself).
func renderFrame(mem *spectrumBus, u *ula.ULA, borderColour uint8) []uint32 {
	pixels := make([]uint32, frameW*frameH)
	border := spectrumPalette[borderColour&0x07]
	for i := range pixels {
		pixels[i] = border
	}

	flash := u.FlashPhase()
	for y := uint16(0); y < screenH; y++ {
		for cx := uint16(0); cx < 32; cx++ {
			attr := mem.Peek(ula.AttrAddr(y, cx))
			ink := attr & 0x07
			paper := (attr >> 3) & 0x07
			bright := (attr >> 6) & 0x01
			flashBit := attr&0x80 != 0

			inkColour := spectrumPalette[ink|bright<<3]
			paperColour := spectrumPalette[paper|bright<<3]
			if flashBit && flash {
				inkColour, paperColour = paperColour, inkColour
			}

			b := mem.Peek(ula.BitmapAddr(y, cx))
			for bit := 0; bit < 8; bit++ {
				px := borderW + int(cx)*8 + bit
				py := borderW + int(y)
				set := b&(1<<(7-bit)) != 0
				if set {
					pixels[py*frameW+px] = inkColour
				} else {
					pixels[py*frameW+px] = paperColour
				}
			}
		}
	}
	return pixels
}
