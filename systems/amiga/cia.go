package amiga

// ciaState models just enough of CIA-A to drive the keyboard, the ROM
// overlay, and the two joystick fire buttons — the minimal subset the
// core's tick loop needs. Full CIA timers/TOD clock are out of scope (see
// DESIGN.md); a real CIA-A/CIA-B pair has far more register surface.
type ciaState struct {
	pra, prb, ddra, ddrb byte
	sdr                  byte
	icr                  byte
	cra, crb             byte

	kb         AmigaKeyboard
	eclockDiv  int
}

const (
	ciaARegPRA = 0
	ciaRegSDR  = 12

	ciaAFireMask0 = 1 << 6 // PRA bit6: port 0 fire, active low
	ciaAFireMask1 = 1 << 7 // PRA bit7: port 1 fire, active low

	// eclockDivisor approximates E-clock (crystal/40 ~= 709kHz) against
	// this core's CCK tick rate (crystal/8 ~= 3.55MHz): one E-clock tick
	// per 5 CCKs.
	eclockDivisor = 5

	intreqBitPorts = 3 // CIA-A/B interrupts both route through PORTS
)

func ciaASelect(addr uint32) (reg int, ok bool) {
	if addr < 0xBFE001 || addr > 0xBFEF01 || addr&1 == 0 {
		return 0, false
	}
	return int((addr - 0xBFE001) / 0x100), true
}

func ciaBSelect(addr uint32) (reg int, ok bool) {
	if addr < 0xBFD000 || addr > 0xBFDF00 || addr&1 != 0 {
		return 0, false
	}
	return int((addr - 0xBFD000) / 0x100), true
}

func (b *amigaBus) ciaRead(addr uint32) byte {
	if reg, ok := ciaASelect(addr); ok {
		switch reg {
		case ciaARegPRA:
			return b.cia.pra
		case ciaRegSDR:
			v := b.cia.sdr
			b.cia.kb.Handshake()
			return v
		default:
			return 0
		}
	}
	return 0
}

func (b *amigaBus) ciaWrite(addr uint32, v byte) {
	if reg, ok := ciaASelect(addr); ok {
		switch reg {
		case ciaARegPRA:
			b.cia.pra = v
			b.overlay = v&1 != 0
		}
		return
	}
	if reg, ok := ciaBSelect(addr); ok {
		switch reg {
		case 0: // CIA-B's own port-A register (disk motor/select lines, unused here)
			b.cia.prb = v
		}
	}
}

// tickKeyboard advances the keyboard's E-clock state machine, called once
// every eclockDivisor CCKs. A ready byte loads SDR and raises the PORTS
// interrupt source, same as real CIA-A hardware signalling a completed
// serial shift.
func (b *amigaBus) tickKeyboard() {
	b.cia.eclockDiv++
	if b.cia.eclockDiv < eclockDivisor {
		return
	}
	b.cia.eclockDiv = 0
	if v, ok := b.cia.kb.Tick(); ok {
		b.cia.sdr = v
		b.agnus.WriteINTREQ(0x8000 | 1<<intreqBitPorts)
	}
}

// joystickFireButtons packs the two ports' fire-button state into CIA-A
// PRA bits 6-7 (active low, matching real hardware).
func (b *amigaBus) setFireButtons(port0, port1 bool) {
	b.cia.pra |= ciaAFireMask0 | ciaAFireMask1
	if port0 {
		b.cia.pra &^= ciaAFireMask0
	}
	if port1 {
		b.cia.pra &^= ciaAFireMask1
	}
}
