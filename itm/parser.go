package itm

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"swotrace/bits"
	"swotrace/trcio"
)

// malformedError marks a packet whose header was recognized but whose
// payload was inconsistent with the protocol. ParseOne converts these
// into an Invalid packet instead of returning them as a Go error, per
// the layer's in-band error policy.
type malformedError struct{ msg string }

func (e *malformedError) Error() string { return e.msg }

func malformed(format string, args ...any) error {
	return &malformedError{msg: fmt.Sprintf(format, args...)}
}

// ErrTooLongProtocolValue is the malformed-packet error for a
// continuation-encoded value that does not terminate within 28 bits.
var ErrTooLongProtocolValue = malformed("too long protocol value")

func isEndOfStream(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// Parser decodes an Instrumentation-layer (ITM/DWT) byte stream into
// Packet values. A Parser owns its reader exclusively and holds no
// state beyond the current byte position and the last latched error;
// it is safe to hand to another goroutine whenever it is not mid-call.
type Parser struct {
	r   *trcio.Reader
	err error
}

// NewParser constructs a Parser reading from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{r: trcio.New(r)}
}

// Position returns the number of bytes consumed from the underlying
// reader so far.
func (p *Parser) Position() uint64 {
	return p.r.Position()
}

// Err returns the latched non-end-of-stream error, if the sequence
// produced by All terminated abnormally.
func (p *Parser) Err() error {
	return p.err
}

func (p *Parser) readByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(p.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ParseOne decodes and returns the next packet. It returns an error
// only for end-of-stream (wrapping io.EOF) or a genuine I/O failure;
// a syntactically legal but semantically undefined header or payload
// is reported in-band as Reserved or Invalid, never as an error.
func (p *Parser) ParseOne() (Packet, error) {
	header, err := p.readByte()
	if err != nil {
		return Packet{}, err
	}

	var pkt Packet
	switch {
	case header == 0x00:
		pkt, err = p.parseSynchronization()
	case header&0x03 == 0x00:
		pkt, err = p.parseProtocol(header)
	default:
		pkt, err = p.parseSource(header)
	}

	if err == nil {
		return pkt, nil
	}
	if isEndOfStream(err) {
		return Packet{}, err
	}
	var me *malformedError
	if errors.As(err, &me) {
		return Packet{Kind: Invalid, Message: me.msg}, nil
	}
	return Packet{}, err
}

// All returns a lazy sequence of packets, stopping cleanly at
// end-of-stream. If the underlying reader fails for any other reason,
// the sequence stops and the error is latched for Err.
func (p *Parser) All() iter.Seq[Packet] {
	return func(yield func(Packet) bool) {
		for {
			pkt, err := p.ParseOne()
			if err != nil {
				if !isEndOfStream(err) {
					p.err = err
				}
				return
			}
			if !yield(pkt) {
				return
			}
		}
	}
}

// parseSynchronization implements ARMv7-M D.2.1: consume zero bytes
// until a non-zero byte appears. 0x80 closes out a Synchronization
// packet; anything else is a Reserved header, tolerating arbitrarily
// many leading zero bytes without allocating.
func (p *Parser) parseSynchronization() (Packet, error) {
	for {
		b, err := p.readByte()
		if err != nil {
			return Packet{}, err
		}
		if b == 0x00 {
			continue
		}
		if b == 0x80 {
			return Packet{Kind: Synchronization}, nil
		}
		return Packet{Kind: Reserved, Header: b}, nil
	}
}

// readProtocolValue reads a continuation-encoded payload (ARMv7-M
// D.2.2): each byte contributes its low 7 bits, most-significant byte
// first, with bit 7 marking "more bytes follow". Fails if 28 bits
// would be exceeded before the high bit clears.
func (p *Parser) readProtocolValue() (value uint32, bitcount uint8, err error) {
	for bitcount < 28 {
		b, err := p.readByte()
		if err != nil {
			return 0, 0, err
		}
		value = (value << 7) | uint32(b&0x7F)
		bitcount += 7
		if b&0x80 == 0 {
			return value, bitcount, nil
		}
	}
	return 0, 0, ErrTooLongProtocolValue
}

// parseProtocol implements ARMv7-M D.2.2. Rows are tried in the order
// specified; the first match wins.
func (p *Parser) parseProtocol(header byte) (Packet, error) {
	b := bits.Split(header)

	var payload uint32
	var payloadBits uint8
	if b[0] == 1 {
		v, bc, err := p.readProtocolValue()
		if err != nil {
			return Packet{}, err
		}
		payload, payloadBits = v, bc
	}

	switch {
	case header == 0x70: // 0 1 1 1 0 0 0 0
		return Packet{Kind: Overflow}, nil

	case b[0] == 1 && b[1] == 1 && header&0x0F == 0x00: // 1 1 a b 0 0 0 0
		return Packet{
			Kind:           LocalTimestamp,
			TimestampSync:  decodeTimestampSync(b[2], b[3]),
			TimestampDelta: TimestampDelta(payload),
		}, nil

	case b[0] == 0 && header&0x0F == 0x00: // 0 a b c 0 0 0 0, header != 0
		return Packet{
			Kind:           LocalTimestamp,
			TimestampSync:  Synchronous,
			TimestampDelta: TimestampDelta(bits.Join(b[1], b[2], b[3])),
		}, nil

	case header == 0x94: // 1 0 0 1 0 1 0 0
		return Packet{
			Kind: GlobalTimestamp,
			GlobalTimestamp: GlobalTimestampValue{
				Timestamp:    uint64(payload) & 0x03FFFFFF,
				KnownMask:    0x03FFFFFF,
				Wrap:         payload&(1<<27) != 0,
				ClockChange:  payload&(1<<26) != 0,
			},
		}, nil

	case header == 0xB4: // 1 0 1 1 0 1 0 0
		return Packet{
			Kind: GlobalTimestamp,
			GlobalTimestamp: GlobalTimestampValue{
				Timestamp: uint64(payload),
				KnownMask: 0x3FFFFF << 26,
			},
		}, nil

	case b[0] == 0 && header&0x0F == 0x08: // 0 a b c 1 0 0 0
		return Packet{
			Kind: SoftwarePageNumber,
			Port: Port(bits.Join(b[1], b[2], b[3]) << 5),
		}, nil

	case header&0x0B == 0x08: // _ a b c 1 s 0 0
		return Packet{
			Kind:              Extension,
			ExtensionData:     (payload << 3) | bits.Join(b[1], b[2], b[3]),
			ExtensionBitCount: payloadBits + 3,
			ExtensionSource:   ExtensionSource(b[5]),
		}, nil

	default:
		return Packet{Kind: Reserved, Header: header}, nil
	}
}

// readSourceValue implements ARMv7-M D.2.7's payload-width selection.
func (p *Parser) readSourceValue(header byte) (DataValue, error) {
	switch header & 0x03 {
	case 1:
		b, err := p.readByte()
		if err != nil {
			return DataValue{}, err
		}
		return DataValue{Width: Width1, Value: uint32(b)}, nil
	case 2:
		lo, err := p.readByte()
		if err != nil {
			return DataValue{}, err
		}
		hi, err := p.readByte()
		if err != nil {
			return DataValue{}, err
		}
		return DataValue{Width: Width2, Value: uint32(lo) | uint32(hi)<<8}, nil
	case 3:
		var v [4]byte
		for i := range v {
			b, err := p.readByte()
			if err != nil {
				return DataValue{}, err
			}
			v[i] = b
		}
		value := uint32(v[0]) | uint32(v[1])<<8 | uint32(v[2])<<16 | uint32(v[3])<<24
		return DataValue{Width: Width4, Value: value}, nil
	default:
		// Unreachable from ParseOne: the top-level dispatch routes any
		// header with low bits 00 to the protocol sub-parser instead.
		// Kept for defensive symmetry with the protocol-value reader.
		return DataValue{}, malformed("zero length source value")
	}
}

// parseSource implements ARMv7-M D.2.7. Rows are tried in the order
// specified; the Software row is checked first because it matches any
// header with bit 2 clear regardless of the other bits.
func (p *Parser) parseSource(header byte) (Packet, error) {
	data, err := p.readSourceValue(header)
	if err != nil {
		return Packet{}, err
	}
	payload := data.Value

	b := bits.Split(header)

	switch {
	case b[5] == 0: // a b c d e 0 _ _
		return Packet{
			Kind: Software,
			Port: Port(bits.Join(b[0], b[1], b[2], b[3], b[4])),
			Data: data,
		}, nil

	case header == 0x05: // 0 0 0 0 0 1 0 1
		return Packet{
			Kind: EventCounter,
			EventCounter: EventCounterFlags{
				CPICount:       payload&0x01 != 0,
				ExceptionCount: payload&0x02 != 0,
				SleepCount:     payload&0x04 != 0,
				LSUCount:       payload&0x08 != 0,
				FoldCount:      payload&0x10 != 0,
				PostCount:      payload&0x20 != 0,
			},
		}, nil

	case header == 0x0E: // 0 0 0 0 1 1 1 0
		var event ExceptionEvent
		switch payload >> 12 {
		case 1:
			event = ExceptionEnter
		case 2:
			event = ExceptionExit
		case 3:
			event = ExceptionResume
		default:
			return Packet{}, malformed("unknown exception event %d", payload>>12)
		}
		return Packet{
			Kind:            Exception,
			ExceptionEvent:  event,
			ExceptionNumber: ExceptionNumber(payload & 0x1FF),
		}, nil

	case header == 0x17: // 0 0 0 1 0 1 1 1
		return Packet{Kind: ProgramCounter, Address: Address(payload)}, nil

	case header&0xCF == 0x46: // 0 1 a b 0 1 1 0
		return Packet{
			Kind:       DataTracePC,
			Comparator: ComparatorIndex(bits.Join(b[2], b[3])),
			Address:    Address(payload),
		}, nil

	case header&0xCF == 0x4E: // 0 1 a b 1 1 1 0
		return Packet{
			Kind:       DataTraceOffset,
			Comparator: ComparatorIndex(bits.Join(b[2], b[3])),
			Address:    Address(payload),
		}, nil

	case header&0xCC == 0x84: // 1 0 a b 0 1 _ _
		return Packet{
			Kind:       DataTraceReadData,
			Comparator: ComparatorIndex(bits.Join(b[2], b[3])),
			Data:       data,
		}, nil

	case header&0xCC == 0x8C: // 1 0 a b 1 1 _ _
		return Packet{
			Kind:       DataTraceWriteData,
			Comparator: ComparatorIndex(bits.Join(b[2], b[3])),
			Data:       data,
		}, nil

	default:
		return Packet{Kind: Reserved, Header: header}, nil
	}
}
