package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/wearlevel/pkg/memdev"
)

func TestReadWrite(t *testing.T) {
	requireT := require.New(t)

	store := NewStore(memdev.New(64))

	requireT.NoError(store.Write(10, []byte{0x01, 0x02, 0x03}))

	buf := make([]byte, 3)
	requireT.NoError(store.Read(10, buf))
	requireT.Equal([]byte{0x01, 0x02, 0x03}, buf)

	// Neighbouring bytes stay untouched.
	around := make([]byte, 5)
	requireT.NoError(store.Read(9, around))
	requireT.Equal([]byte{0x00, 0x01, 0x02, 0x03, 0x00}, around)
}

func TestEmptyBuffers(t *testing.T) {
	requireT := require.New(t)

	store := NewStore(memdev.New(64))

	requireT.Error(store.Read(0, nil))
	requireT.Error(store.Write(0, nil))
}

func TestSeekFailure(t *testing.T) {
	requireT := require.New(t)

	store := NewStore(memdev.New(8))

	// Addresses beyond the device end fail at seek time.
	requireT.Error(store.Read(9, make([]byte, 1)))
	requireT.Error(store.Write(9, []byte{0x01}))
}

func TestWriteFailure(t *testing.T) {
	requireT := require.New(t)

	dev := memdev.New(64)
	store := NewStore(dev)

	dev.FailWritesAfter(0)
	requireT.Error(store.Write(0, []byte{0x01}))

	dev.FailWritesAfter(-1)
	requireT.NoError(store.Write(0, []byte{0x01}))
}

func TestSync(t *testing.T) {
	requireT := require.New(t)

	store := NewStore(memdev.New(64))
	requireT.NoError(store.Sync())
}
