package c64

import "github.com/n-ulricksen/retrocore/bus"

// VIC-II timing constants for the PAL 6569, grounded on
// original_source/crates/emu-c64/src/config.rs's C64Model::C64Pal figures:
// 312 lines/frame, 63 CPU cycles/line, ~50.12 Hz refresh.
const (
	LinesPerFrame  uint16 = 312
	CyclesPerLine  byte   = 63
	visibleLines   uint16 = 200
	firstVisible   uint16 = 51 // first line of the 200-line text display
	frameWidth     int    = 320
	frameHeight    int    = 200
	borderColumns  int    = 32 // pixels of border either side, giving a 384px raster
)

// c64Palette is the 16-colour VIC-II palette, grounded on
// original_source/crates/emu-c64/src/palette.rs's VICE PAL values.
var c64Palette = [16]uint32{
	0xFF000000, 0xFFFFFFFF, 0xFF883932, 0xFF67B6BD,
	0xFF8B3F96, 0xFF55A049, 0xFF40318D, 0xFFBFCE72,
	0xFF8B5429, 0xFF574200, 0xFFB86962, 0xFF505050,
	0xFF787878, 0xFF94E089, 0xFF7868C0, 0xFF9F9F9F,
}

// VicMemory is the bank-relative memory the VIC-II fetches character data,
// colour data and screen data from: a host bus plus its own colour RAM and
// registers, exposed narrowly so the VIC never needs the full CPU bus.
type VicMemory interface {
	VicRead(addr uint16) byte
}

// Vic is a minimal VIC-II: the raster beam counter, border/background
// colour registers and a text-mode-only framebuffer renderer. Sprite DMA,
// bitmap mode and bad-line cycle stealing are out of scope for this core
// (see DESIGN.md); the beam position and IRQ raster-compare are modelled
// faithfully since software commonly times against them.
type Vic struct {
	mem VicMemory

	Line      uint16
	lineCycle byte

	BorderColour uint8
	BgColour0    uint8

	raster     byte // low 8 bits of the raster IRQ compare register ($D012)
	rasterHi   bool  // bit 7 of $D011: high bit of the compare value
	irqOnRaster bool
	irqPending  bool

	screenBase uint16 // bits 4-7 of $D018 << 10
	charBase   uint16 // bits 1-3 of $D018 << 11

	frameComplete bool
}

func NewVic(mem VicMemory) *Vic { return &Vic{mem: mem} }

// Tick advances the beam by one CPU cycle (the VIC and CPU share a clock on
// the C64, unlike the NES's divided PPU/CPU rates).
func (v *Vic) Tick() {
	v.lineCycle++
	if v.lineCycle >= CyclesPerLine {
		v.lineCycle = 0
		v.Line++
		if v.Line >= LinesPerFrame {
			v.Line = 0
			v.frameComplete = true
		}
		if v.compareValue() == v.Line && v.irqOnRaster {
			v.irqPending = true
		}
	}
}

func (v *Vic) compareValue() uint16 {
	hi := uint16(0)
	if v.rasterHi {
		hi = 0x100
	}
	return hi | uint16(v.raster)
}

// TakeFrameComplete reports and clears the end-of-frame flag.
func (v *Vic) TakeFrameComplete() bool {
	c := v.frameComplete
	v.frameComplete = false
	return c
}

// TakeIRQ reports and clears a pending raster interrupt.
func (v *Vic) TakeIRQ() bool {
	p := v.irqPending
	v.irqPending = false
	return p
}

// ReadRegister implements the $D000-$D02E VIC-II register window (the
// subset this core models: border/background colour, raster compare,
// memory pointers).
func (v *Vic) ReadRegister(reg byte) byte {
	switch reg {
	case 0x11:
		b := byte(0)
		if v.rasterHi {
			b |= 0x80
		}
		return b
	case 0x12:
		return byte(v.Line)
	case 0x18:
		return byte(v.screenBase>>10) | byte(v.charBase>>11)
	case 0x20:
		return v.BorderColour & 0x0F
	case 0x21:
		return v.BgColour0 & 0x0F
	default:
		return 0xFF
	}
}

// WriteRegister implements the writable subset of the same window.
func (v *Vic) WriteRegister(reg byte, value byte) {
	switch reg {
	case 0x11:
		v.rasterHi = value&0x80 != 0
		v.irqOnRaster = true
	case 0x12:
		v.raster = value
	case 0x18:
		v.screenBase = uint16(value&0xF0) << 6
		v.charBase = uint16(value&0x0E) << 10
	case 0x20:
		v.BorderColour = value & 0x0F
	case 0x21:
		v.BgColour0 = value & 0x0F
	}
}

// RenderFrame paints the 320x200 text-mode display plus border into a flat
// ARGB framebuffer: each screen-code byte looks up an 8x8 glyph from
// character ROM/RAM and colours it from colour RAM, matching the VIC-II's
// standard text mode.
func (v *Vic) RenderFrame() []uint32 {
	w := frameWidth + borderColumns*2
	h := frameHeight + int(firstVisible)
	pixels := make([]uint32, w*h)
	border := c64Palette[v.BorderColour]
	for i := range pixels {
		pixels[i] = border
	}
	bg := c64Palette[v.BgColour0]

	for row := 0; row < 25; row++ {
		for col := 0; col < 40; col++ {
			screenCode := v.mem.VicRead(v.screenBase + uint16(row*40+col))
			colour := c64Palette[v.mem.VicRead(0xD800+uint16(row*40+col))&0x0F]
			for glyphRow := 0; glyphRow < 8; glyphRow++ {
				glyph := v.mem.VicRead(v.charBase + uint16(screenCode)*8 + uint16(glyphRow))
				py := int(firstVisible) + row*8 + glyphRow
				for bit := 0; bit < 8; bit++ {
					px := borderColumns + col*8 + bit
					set := glyph&(1<<(7-bit)) != 0
					if set {
						pixels[py*w+px] = colour
					} else {
						pixels[py*w+px] = bg
					}
				}
			}
		}
	}
	return pixels
}

// Query implements bus.Observable, grounded on the same path-based
// inspector hook used by agnus.Agnus and ppu.PPU.
func (v *Vic) Query(path string) (bus.Value, bool) {
	switch path {
	case "line":
		return bus.U16(v.Line), true
	case "cycle":
		return bus.U8(v.lineCycle), true
	case "border":
		return bus.U8(v.BorderColour), true
	case "bg0":
		return bus.U8(v.BgColour0), true
	default:
		return nil, false
	}
}

// QueryPaths implements bus.Observable.
func (v *Vic) QueryPaths() []string {
	return []string{"line", "cycle", "border", "bg0"}
}

var _ bus.Observable = (*Vic)(nil)
