package nes

import (
	"github.com/n-ulricksen/retrocore/bus"
)

const (
	inesMagic0 = 'N'
	inesMagic1 = 'E'
	inesMagic2 = 'S'
	inesMagic3 = 0x1A
	headerLen  = 16
	prgBankLen = 16384
	chrBankLen = 8192
	trainerLen = 512
)

// Cartridge holds a parsed iNES image: PRG/CHR memory and the mapper that
// translates CPU/PPU addresses into offsets within them.
//
// Grounded on the teacher's nes/cartridge.go, which parsed the exact same
// iNES header shape (including the trainer skip) but ended NewCartridge
// with `return nil` instead of the `cartridge` variable it had just built —
// discarding the entire parse. It also used log.Fatalf for every error
// path, which kills the whole process instead of letting the caller
// recover; this version reports bus.ConfigError instead, the load path
// being the one place in the core that is allowed to fail explicitly
// (see bus.ConfigError's doc comment).
type Cartridge struct {
	prgMem    []byte
	chrMem    []byte
	mapper    Mapper
	hasCHRRAM bool
}

// ParseINES parses a raw iNES (.nes) image into a Cartridge.
func ParseINES(data []byte) (*Cartridge, error) {
	if len(data) < headerLen {
		return nil, bus.NewConfigError(bus.FileTruncated, "iNES header truncated")
	}
	if data[0] != inesMagic0 || data[1] != inesMagic1 || data[2] != inesMagic2 || data[3] != inesMagic3 {
		return nil, bus.NewConfigError(bus.BadHeader, "missing iNES magic bytes")
	}

	prgBanks := data[4]
	chrBanks := data[5]
	flags6 := data[6]
	flags7 := data[7]

	mapperID := (flags7 & 0xF0) | (flags6 >> 4)
	if mapperID != 0 {
		return nil, bus.NewConfigError(bus.UnsupportedFormat, "only mapper 0 (NROM) is supported")
	}

	offset := headerLen
	if flags6&0x04 != 0 {
		offset += trainerLen // skip 512-byte trainer
	}

	prgLen := int(prgBanks) * prgBankLen
	if len(data) < offset+prgLen {
		return nil, bus.NewConfigError(bus.FileTruncated, "PRG ROM truncated")
	}
	prgMem := make([]byte, prgLen)
	copy(prgMem, data[offset:offset+prgLen])
	offset += prgLen

	hasCHRRAM := chrBanks == 0
	chrLen := int(chrBanks) * chrBankLen
	var chrMem []byte
	if hasCHRRAM {
		chrMem = make([]byte, chrBankLen)
	} else {
		if len(data) < offset+chrLen {
			return nil, bus.NewConfigError(bus.FileTruncated, "CHR ROM truncated")
		}
		chrMem = make([]byte, chrLen)
		copy(chrMem, data[offset:offset+chrLen])
	}

	vertical := flags6&0x01 != 0

	return &Cartridge{
		prgMem:    prgMem,
		chrMem:    chrMem,
		mapper:    NewMapper000(prgBanks, vertical),
		hasCHRRAM: hasCHRRAM,
	}, nil
}

// CPURead services a CPU address in the $8000-$FFFF cartridge window.
func (c *Cartridge) CPURead(addr uint16) (byte, bool) {
	off, ok := c.mapper.CPUMapRead(addr)
	if !ok {
		return 0, false
	}
	return c.prgMem[off], true
}

// CPUWrite services a CPU write into the cartridge window. Mapper000
// (NROM) has no PRG RAM or bank-select register, so this is always
// rejected; CPUMapWrite exists on Mapper for the bank-switching mappers
// that would need it.
func (c *Cartridge) CPUWrite(addr uint16, data byte) bool {
	return false
}

// PPURead implements ppu.CartridgeBus.
func (c *Cartridge) PPURead(addr uint16) (byte, bool) {
	off, ok := c.mapper.PPUMapRead(addr)
	if !ok {
		return 0, false
	}
	return c.chrMem[off], true
}

// PPUWrite implements ppu.CartridgeBus; only CHR RAM cartridges accept it.
func (c *Cartridge) PPUWrite(addr uint16, data byte) bool {
	if !c.hasCHRRAM {
		return false
	}
	off, ok := c.mapper.PPUMapWrite(addr)
	if !ok {
		return false
	}
	c.chrMem[off] = data
	return true
}

// MirrorVertical implements ppu.CartridgeBus.
func (c *Cartridge) MirrorVertical() bool { return c.mapper.MirrorVertical() }
