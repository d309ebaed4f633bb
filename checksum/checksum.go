/*
Package checksum implements the 16-bit checksum used by Game Boy Printer
packets.

It is the sum of every byte following the two sync bytes up to the checksum
itself, that is the command, compression flag, both length bytes and the
data, truncated to 16 bits.
*/
package checksum

import "hash"

// Size is the size of the checksum in bytes.
const Size = 2

type digest struct {
	sum uint16
}

// Hash16 is the common interface implemented by 16-bit hash functions.
type Hash16 interface {
	hash.Hash
	Sum16() uint16
}

// New creates a new Hash16 computing the packet checksum. Its Sum method
// will lay the value out in little-endian byte order, as it appears on the
// wire.
func New() Hash16 {
	return &digest{}
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return 1 }

func (d *digest) Reset() { d.sum = 0 }

func update(sum uint16, p []byte) uint16 {
	for _, b := range p {
		sum += uint16(b)
	}
	return sum
}

// Update returns the result of adding the bytes in p to the sum.
func Update(sum uint16, p []byte) uint16 {
	return update(sum, p)
}

func (d *digest) Write(p []byte) (n int, err error) {
	d.sum = update(d.sum, p)
	return len(p), nil
}

func (d *digest) Sum16() uint16 { return d.sum }

func (d *digest) Sum(in []byte) []byte {
	s := d.Sum16()
	return append(in, byte(s), byte(s>>8))
}

// Checksum returns the checksum of data.
func Checksum(data []byte) uint16 { return Update(0, data) }
