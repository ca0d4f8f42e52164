package sectors

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Checksum computes a 16-bit digest of bytes. The store treats it as a black
// box; any deterministic function works as long as the same one is used for
// sealing and scanning.
type Checksum func(p []byte) uint16

// Sum16 is the stock checksum, truncating xxhash to 16 bits.
func Sum16(p []byte) uint16 {
	return uint16(xxhash.Sum64(p))
}

// Seal embeds the checksum of the record body into the trailing checksum
// field. The body is everything before the last ChecksumSize bytes.
func Seal(p []byte, checksum Checksum) {
	body := p[:len(p)-ChecksumSize]
	binary.LittleEndian.PutUint16(p[len(p)-ChecksumSize:], checksum(body))
}

// Valid reports whether the trailing checksum field matches the record body.
func Valid(p []byte, checksum Checksum) bool {
	body := p[:len(p)-ChecksumSize]
	return binary.LittleEndian.Uint16(p[len(p)-ChecksumSize:]) == checksum(body)
}
