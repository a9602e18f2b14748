package formatter

import (
	"io"
	"iter"

	"swotrace/trcio"
)

// Deframer reconstructs per-source byte streams from a stream of
// fixed 16-byte Formatter frames. It owns its reader exclusively and
// holds no state beyond the current byte position, the packets
// buffered from the frame being drained, the persisting current
// source, and any latched error.
type Deframer struct {
	r      *trcio.Reader
	source SourceID
	err    error
	buffer []Packet
}

// NewDeframer constructs a Deframer reading from r.
func NewDeframer(r io.Reader) *Deframer {
	return &Deframer{r: trcio.New(r)}
}

// Position returns the number of bytes consumed from the underlying
// reader so far.
func (d *Deframer) Position() uint64 {
	return d.r.Position()
}

// Err returns the latched non-end-of-stream error, if the sequence
// produced by All terminated abnormally.
func (d *Deframer) Err() error {
	return d.err
}

// Next returns the next buffered packet, reading and deframing
// additional frames as needed. ok is false exactly when the stream
// ended cleanly (err is nil) or abnormally (err is the latched
// failure); once ok is false, the Deframer has nothing further to
// offer.
func (d *Deframer) Next() (Packet, bool, error) {
	for len(d.buffer) == 0 {
		if err := d.parseFrame(); err != nil {
			if isEndOfStream(err) {
				return Packet{}, false, nil
			}
			d.err = err
			return Packet{}, false, err
		}
	}
	pkt := d.buffer[0]
	d.buffer = d.buffer[1:]
	return pkt, true, nil
}

// All returns a lazy sequence of packets, stopping cleanly at
// end-of-stream. If the underlying reader fails for any other reason,
// the sequence stops and the error is latched for Err.
func (d *Deframer) All() iter.Seq[Packet] {
	return func(yield func(Packet) bool) {
		for {
			pkt, ok, err := d.Next()
			if !ok {
				if err != nil {
					d.err = err
				}
				return
			}
			if !yield(pkt) {
				return
			}
		}
	}
}

// isEndOfStream reports a clean end at a frame boundary. A frame cut
// short (io.ErrUnexpectedEOF) is not a clean end and gets latched.
func isEndOfStream(err error) bool {
	return err == io.EOF
}

// parseFrame reads one 16-byte frame and appends every packet it
// produces to the buffer. Byte 15 is the auxiliary byte: its bit i/2
// supplies the LSB displaced from frame[i] when frame[i] carries data.
func (d *Deframer) parseFrame() error {
	var frame [16]byte
	if _, err := io.ReadFull(d.r, frame[:]); err != nil {
		return err
	}

	var data []byte
	for i := 0; i < 15; i += 2 {
		aux := (frame[15] >> (i / 2)) & 1

		if frame[i]&0x01 == 0 {
			data = append(data, (frame[i]&0xFE)|aux)
			if i != 14 {
				data = append(data, frame[i+1])
			}
			continue
		}

		if i != 14 && aux == 1 {
			data = append(data, frame[i+1])
		}
		if len(data) > 0 {
			d.buffer = append(d.buffer, d.source.ToPacket(data))
			data = nil
		}
		d.source = SourceID(frame[i] >> 1)
		if i != 14 && aux == 0 {
			data = append(data, frame[i+1])
		}
	}

	if len(data) > 0 {
		d.buffer = append(d.buffer, d.source.ToPacket(data))
	}
	return nil
}
