package main

import (
	"io"

	"swotrace/common"
	"swotrace/formatter"
)

// chanReader adapts a channel of byte slices into an io.Reader. It is
// the queue between the Formatter goroutine and the Instrumentation
// parser that consumes the payload of whichever source carries the
// Instrumentation stream.
type chanReader struct {
	ch  <-chan []byte
	buf []byte
}

func (c *chanReader) Read(p []byte) (int, error) {
	for len(c.buf) == 0 {
		chunk, ok := <-c.ch
		if !ok {
			return 0, io.EOF
		}
		c.buf = chunk
	}
	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

// bridgeFormatter runs a Formatter deframer over src on its own
// goroutine and forwards the Data payloads for sourceID through a
// bounded channel, returning an io.Reader the caller feeds directly
// into an Instrumentation parser. Packets from other sources, and
// Trigger/Null/Reserved/Invalid packets, are dropped.
func bridgeFormatter(src io.Reader, sourceID formatter.SourceID, log common.Logger) io.Reader {
	const queueDepth = 64
	ch := make(chan []byte, queueDepth)

	go func() {
		defer close(ch)
		d := formatter.NewDeframer(src)
		for pkt := range d.All() {
			if pkt.Kind != formatter.Data || pkt.Source != sourceID {
				continue
			}
			ch <- pkt.Data
		}
		if err := d.Err(); err != nil {
			log.Error(err)
		}
	}()

	return &chanReader{ch: ch}
}
