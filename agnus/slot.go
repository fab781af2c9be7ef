package agnus

// OwnerKind identifies who holds the current colour-clock's bus slot.
type OwnerKind int

const (
	OwnerCPU OwnerKind = iota
	OwnerRefresh
	OwnerDisk
	OwnerAudio
	OwnerSprite
	OwnerBitplane
	OwnerCopper
)

// SlotOwner names the owner of a colour clock, plus the channel index for
// the per-channel owners (Audio 0-3, Sprite 0-7).
type SlotOwner struct {
	Kind    OwnerKind
	Channel uint8
}

func (o SlotOwner) String() string {
	switch o.Kind {
	case OwnerCPU:
		return "cpu"
	case OwnerRefresh:
		return "refresh"
	case OwnerDisk:
		return "disk"
	case OwnerAudio:
		return "audio"
	case OwnerSprite:
		return "sprite"
	case OwnerBitplane:
		return "bitplane"
	case OwnerCopper:
		return "copper"
	default:
		return "unknown"
	}
}

var cpuSlot = SlotOwner{Kind: OwnerCPU}
var refreshSlot = SlotOwner{Kind: OwnerRefresh}
