package itm

import "fmt"

// PacketKind tags which alternative of Packet is populated.
type PacketKind int

const (
	Synchronization PacketKind = iota
	Overflow
	LocalTimestamp
	GlobalTimestamp
	SoftwarePageNumber
	Software
	EventCounter
	ProgramCounter
	SleepMode
	Exception
	DataTracePC
	DataTraceOffset
	DataTraceReadData
	DataTraceWriteData
	Extension
	Reserved
	Invalid
)

func (k PacketKind) String() string {
	switch k {
	case Synchronization:
		return "Synchronization"
	case Overflow:
		return "Overflow"
	case LocalTimestamp:
		return "LocalTimestamp"
	case GlobalTimestamp:
		return "GlobalTimestamp"
	case SoftwarePageNumber:
		return "SoftwarePageNumber"
	case Software:
		return "Software"
	case EventCounter:
		return "EventCounter"
	case ProgramCounter:
		return "ProgramCounter"
	case SleepMode:
		return "SleepMode"
	case Exception:
		return "Exception"
	case DataTracePC:
		return "DataTracePC"
	case DataTraceOffset:
		return "DataTraceOffset"
	case DataTraceReadData:
		return "DataTraceReadData"
	case DataTraceWriteData:
		return "DataTraceWriteData"
	case Extension:
		return "Extension"
	case Reserved:
		return "Reserved"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Packet is a single decoded Instrumentation-layer packet. Kind
// selects which of the fields below are meaningful; Packet is a flat
// struct rather than an interface hierarchy because the set of
// alternatives is closed and decoded in a single hot dispatch loop —
// the same shape the reference decoder uses for its packet type.
//
// Packets are immutable once returned from the parser.
type Packet struct {
	Kind PacketKind

	// LocalTimestamp
	TimestampSync  TimestampSync
	TimestampDelta TimestampDelta

	// GlobalTimestamp
	GlobalTimestamp GlobalTimestampValue

	// SoftwarePageNumber, Software
	Port Port
	Data DataValue

	// EventCounter
	EventCounter EventCounterFlags

	// ProgramCounter, DataTracePC, DataTraceOffset
	Address Address

	// Exception
	ExceptionEvent  ExceptionEvent
	ExceptionNumber ExceptionNumber

	// DataTracePC, DataTraceOffset, DataTraceReadData, DataTraceWriteData
	Comparator ComparatorIndex

	// Extension
	ExtensionData     uint32
	ExtensionBitCount uint8
	ExtensionSource   ExtensionSource

	// Reserved
	Header byte

	// Invalid
	Message string
}

// String renders a short human-readable summary of the packet, in the
// spirit of the teacher's Packet.String.
func (p Packet) String() string {
	switch p.Kind {
	case Synchronization:
		return "Synchronization"
	case Overflow:
		return "Overflow"
	case LocalTimestamp:
		return fmt.Sprintf("LocalTimestamp(%s, delta=0x%X)", p.TimestampSync, uint32(p.TimestampDelta))
	case GlobalTimestamp:
		return fmt.Sprintf("GlobalTimestamp(ts=0x%X, mask=0x%X, wrap=%v, clockChange=%v)",
			p.GlobalTimestamp.Timestamp, p.GlobalTimestamp.KnownMask, p.GlobalTimestamp.Wrap, p.GlobalTimestamp.ClockChange)
	case SoftwarePageNumber:
		return fmt.Sprintf("SoftwarePageNumber(port=%d)", uint32(p.Port))
	case Software:
		return fmt.Sprintf("Software(port=%d, data=%s)", uint32(p.Port), p.Data)
	case EventCounter:
		return fmt.Sprintf("EventCounter(%+v)", p.EventCounter)
	case ProgramCounter:
		return fmt.Sprintf("ProgramCounter(%s)", p.Address)
	case SleepMode:
		return "SleepMode"
	case Exception:
		return fmt.Sprintf("Exception(%s, number=%d)", p.ExceptionEvent, uint16(p.ExceptionNumber))
	case DataTracePC:
		return fmt.Sprintf("DataTracePC(index=%d, address=%s)", uint8(p.Comparator), p.Address)
	case DataTraceOffset:
		return fmt.Sprintf("DataTraceOffset(index=%d, address=%s)", uint8(p.Comparator), p.Address)
	case DataTraceReadData:
		return fmt.Sprintf("DataTraceReadData(index=%d, data=%s)", uint8(p.Comparator), p.Data)
	case DataTraceWriteData:
		return fmt.Sprintf("DataTraceWriteData(index=%d, data=%s)", uint8(p.Comparator), p.Data)
	case Extension:
		return fmt.Sprintf("Extension(data=0x%X, bits=%d, source=%s)", p.ExtensionData, p.ExtensionBitCount, p.ExtensionSource)
	case Reserved:
		return fmt.Sprintf("Reserved(0x%02X)", p.Header)
	case Invalid:
		return fmt.Sprintf("Invalid(%s)", p.Message)
	default:
		return "Unknown"
	}
}
