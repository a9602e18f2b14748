// Package trcio wraps an io.Reader with a running count of bytes
// consumed, so decoded packets can be correlated back to their byte
// offset in the capture.
package trcio

import "io"

// Reader wraps an io.Reader, counting bytes successfully read.
// A Reader is owned exclusively by whichever parser it is handed to;
// it holds no state beyond the wrapped reader and the running count.
type Reader struct {
	r        io.Reader
	position uint64
}

// New wraps r, starting the position counter at zero.
func New(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read implements io.Reader. It returns the number of bytes actually
// read, which may be less than len(p); end-of-stream returns 0, io.EOF.
func (p *Reader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.position += uint64(n)
	return n, err
}

// Position returns the total number of bytes successfully consumed
// since construction.
func (p *Reader) Position() uint64 {
	return p.position
}
