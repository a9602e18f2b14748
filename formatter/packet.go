package formatter

import "fmt"

// PacketKind tags which alternative of Packet is populated.
type PacketKind int

const (
	FrameSynchronization PacketKind = iota
	HalfwordSynchronization
	Data
	Trigger
	Null
	Reserved
	Invalid
)

func (k PacketKind) String() string {
	switch k {
	case FrameSynchronization:
		return "FrameSynchronization"
	case HalfwordSynchronization:
		return "HalfwordSynchronization"
	case Data:
		return "Data"
	case Trigger:
		return "Trigger"
	case Null:
		return "Null"
	case Reserved:
		return "Reserved"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// SourceID is the Formatter's small-integer key for a multiplexed
// sub-stream: 0 is the padding/null source, 1..0x6F carry ordinary
// data, 0x7D is the trigger source, 0x7F is never valid, and anything
// else is reserved.
type SourceID uint8

// ToPacket attributes data to the source, choosing the packet kind
// from the source ID ranges in the Formatter packet model.
func (s SourceID) ToPacket(data []byte) Packet {
	switch {
	case s == 0x00:
		return Packet{Kind: Null, Source: s, Data: data}
	case s >= 0x01 && s <= 0x6F:
		return Packet{Kind: Data, Source: s, Data: data}
	case s == 0x7D:
		return Packet{Kind: Trigger, Source: s, Data: data}
	case s == 0x7F:
		return Packet{Kind: Invalid, Source: s, Message: "source ID 0x7F is invalid"}
	default:
		return Packet{Kind: Reserved, Source: s, Data: data}
	}
}

// Packet is a single decoded Formatter-layer packet. Kind selects
// which of the fields below are meaningful, following the same flat
// tagged-struct shape as itm.Packet.
type Packet struct {
	Kind PacketKind

	// Data, Trigger, Null, Reserved
	Source SourceID
	Data   []byte

	// Invalid
	Message string
}

func (p Packet) String() string {
	switch p.Kind {
	case FrameSynchronization:
		return "FrameSynchronization"
	case HalfwordSynchronization:
		return "HalfwordSynchronization"
	case Data:
		return fmt.Sprintf("Data(source=%d, %d bytes)", uint8(p.Source), len(p.Data))
	case Trigger:
		return fmt.Sprintf("Trigger(%d bytes)", len(p.Data))
	case Null:
		return fmt.Sprintf("Null(%d bytes)", len(p.Data))
	case Reserved:
		return fmt.Sprintf("Reserved(source=%d, %d bytes)", uint8(p.Source), len(p.Data))
	case Invalid:
		return fmt.Sprintf("Invalid(%s)", p.Message)
	default:
		return "Unknown"
	}
}
