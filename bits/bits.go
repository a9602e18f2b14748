// Package bits provides the small bit-manipulation helpers the header
// dispatch tables in itm are built on: splitting a byte
// into its individual bits and folding a short bit sequence back into
// an unsigned integer, both most-significant-bit first.
package bits

// Split decomposes a byte into its eight bits, most-significant-first,
// so header dispatch can pattern-match b7,b6,...,b0 the way the
// reference manual's bit-field diagrams are laid out.
func Split(b byte) [8]uint8 {
	return [8]uint8{
		(b >> 7) & 1,
		(b >> 6) & 1,
		(b >> 5) & 1,
		(b >> 4) & 1,
		(b >> 3) & 1,
		(b >> 2) & 1,
		(b >> 1) & 1,
		(b >> 0) & 1,
	}
}

// Join interprets bits as a base-2 unsigned integer, most-significant
// bit first. Only the low bit of each element is used.
func Join(bits ...uint8) uint32 {
	var result uint32
	for _, b := range bits {
		result = result*2 + uint32(b&1)
	}
	return result
}
