package memdev

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDev() *MemDev {
	const size = 10

	dev := New(size)
	for i := 0; i < size; i++ {
		dev.data[i] = byte(i)
	}

	return dev
}

func TestSeek(t *testing.T) {
	assertT := assert.New(t)

	dev := newDev()

	o, err := dev.Seek(-1, io.SeekStart)
	assertT.Error(err)
	assertT.EqualValues(0, o)

	o, err = dev.Seek(5, io.SeekStart)
	assertT.NoError(err)
	assertT.EqualValues(5, o)

	o, err = dev.Seek(2, io.SeekCurrent)
	assertT.NoError(err)
	assertT.EqualValues(7, o)

	o, err = dev.Seek(-2, io.SeekEnd)
	assertT.NoError(err)
	assertT.EqualValues(8, o)

	o, err = dev.Seek(1, io.SeekEnd)
	assertT.Error(err)
	assertT.EqualValues(0, o)
}

func TestReadWrite(t *testing.T) {
	requireT := require.New(t)

	dev := newDev()

	buf := make([]byte, 3)
	n, err := dev.Read(buf)
	requireT.NoError(err)
	requireT.EqualValues(3, n)
	requireT.Equal([]byte{0x00, 0x01, 0x02}, buf)

	_, err = dev.Seek(8, io.SeekStart)
	requireT.NoError(err)

	// Reads and writes at the device end are short, not failed.
	n, err = dev.Write([]byte{0x20, 0x21, 0x22})
	requireT.NoError(err)
	requireT.EqualValues(2, n)
	requireT.Equal([]byte{0x20, 0x21}, dev.data[8:])
}

func TestSyncAndSize(t *testing.T) {
	assertT := assert.New(t)

	dev := newDev()
	assertT.NoError(dev.Sync())
	assertT.EqualValues(10, dev.Size())
}

func TestFailWritesAfter(t *testing.T) {
	requireT := require.New(t)

	dev := newDev()
	dev.FailWritesAfter(1)

	_, err := dev.Write([]byte{0x01})
	requireT.NoError(err)

	_, err = dev.Write([]byte{0x02})
	requireT.Error(err)
	_, err = dev.Write([]byte{0x03})
	requireT.Error(err)

	// Reads are unaffected.
	_, err = dev.Seek(0, io.SeekStart)
	requireT.NoError(err)
	_, err = dev.Read(make([]byte, 1))
	requireT.NoError(err)

	dev.FailWritesAfter(-1)
	_, err = dev.Write([]byte{0x04})
	requireT.NoError(err)
}
