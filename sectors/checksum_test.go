package sectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealAndValid(t *testing.T) {
	requireT := require.New(t)

	record := make([]byte, 10)
	for i := 0; i < 8; i++ {
		record[i] = byte(i + 1)
	}

	Seal(record, Sum16)
	requireT.True(Valid(record, Sum16))

	// Flipping a bit in the trailing field invalidates the record.
	record[9] ^= 0x01
	requireT.False(Valid(record, Sum16))
	record[9] ^= 0x01
	requireT.True(Valid(record, Sum16))

	// So does flipping a bit in the body.
	record[3] ^= 0x80
	requireT.False(Valid(record, Sum16))
}

func TestSealMinimalRecord(t *testing.T) {
	requireT := require.New(t)

	// A record carrying nothing but the checksum field is still sealable.
	record := make([]byte, ChecksumSize)
	Seal(record, Sum16)
	requireT.True(Valid(record, Sum16))
}

func TestSum16Deterministic(t *testing.T) {
	assertT := assert.New(t)

	data := []byte("wear leveling")
	assertT.Equal(Sum16(data), Sum16(data))
	assertT.NotEqual(Sum16(data), Sum16([]byte("wear levelling")))
}

func TestCustomChecksum(t *testing.T) {
	requireT := require.New(t)

	custom := func(p []byte) uint16 {
		var sum uint16
		for _, b := range p {
			sum += uint16(b)
		}
		return sum
	}

	record := []byte{0x01, 0x02, 0x03, 0x00, 0x00}
	Seal(record, custom)
	requireT.True(Valid(record, custom))
	requireT.False(Valid(record, Sum16))
}
