package ppu

// oamSprite is one 4-byte sprite entry: Y position, tile id, attribute
// byte, and X position.
type oamSprite struct {
	y, id, attribute, x byte
}

// oam is the 64-entry sprite attribute table the PPU scans each scanline.
//
// Grounded on the teacher's nes/oam.go, whose write method did
// `sprite := oam[spriteIdx]` and then mutated fields on that local copy,
// never storing it back — every OAM write was silently discarded. This
// version indexes the target field directly instead of round-tripping
// through a struct copy.
type oam struct {
	entries [64]oamSprite
}

func (o *oam) read(addr byte) byte {
	idx := addr / 4
	switch addr % 4 {
	case 0:
		return o.entries[idx].y
	case 1:
		return o.entries[idx].id
	case 2:
		return o.entries[idx].attribute
	default:
		return o.entries[idx].x
	}
}

func (o *oam) write(addr, data byte) {
	idx := addr / 4
	switch addr % 4 {
	case 0:
		o.entries[idx].y = data
	case 1:
		o.entries[idx].id = data
	case 2:
		o.entries[idx].attribute = data
	default:
		o.entries[idx].x = data
	}
}

func (o *oam) clear() {
	for i := range o.entries {
		o.entries[i] = oamSprite{0xFF, 0xFF, 0xFF, 0xFF}
	}
}

func (o *oam) loadPage(page [256]byte) {
	for i := 0; i < 64; i++ {
		o.entries[i] = oamSprite{
			y:         page[i*4+0],
			id:        page[i*4+1],
			attribute: page[i*4+2],
			x:         page[i*4+3],
		}
	}
}
