package mmapdev

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

var (
	_ io.Seeker = &MmapDev{}
	_ io.Reader = &MmapDev{}
	_ io.Writer = &MmapDev{}
)

// MmapDev maps a file into memory and serves device io from the mapping.
// Sync msyncs the mapping, so a crash after a synced write leaves the file
// consistent with what the store observed.
type MmapDev struct {
	file   *os.File
	data   []byte
	offset int64
}

// New maps the whole file. Mapping an empty file is not possible, the file
// must be sized to the device address space before opening.
func New(file *os.File) (*MmapDev, error) {
	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if size == 0 {
		return nil, errors.New("cannot map an empty file")
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &MmapDev{
		file: file,
		data: data,
	}, nil
}

// Seek seeks the position.
func (md *MmapDev) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = md.offset + offset
	case io.SeekEnd:
		offset = int64(len(md.data)) + offset
	}

	if offset < 0 || offset > int64(len(md.data)) {
		return 0, errors.Errorf("invalid offset: %d", offset)
	}

	md.offset = offset
	return offset, nil
}

// Read reads data from the mapping.
func (md *MmapDev) Read(p []byte) (int, error) {
	if md.data == nil {
		return 0, errors.New("device is closed")
	}
	n := copy(p, md.data[md.offset:])
	md.offset += int64(n)
	return n, nil
}

// Write writes data to the mapping.
func (md *MmapDev) Write(p []byte) (int, error) {
	if md.data == nil {
		return 0, errors.New("device is closed")
	}
	n := copy(md.data[md.offset:], p)
	md.offset += int64(n)
	return n, nil
}

// Sync msyncs the mapping to the file.
func (md *MmapDev) Sync() error {
	if md.data == nil {
		return errors.New("device is closed")
	}
	return errors.WithStack(unix.Msync(md.data, unix.MS_SYNC))
}

// Size returns the byte size of the mapping.
func (md *MmapDev) Size() int64 {
	return int64(len(md.data))
}

// Close unmaps the file and closes the handle.
func (md *MmapDev) Close() error {
	if md.data != nil {
		if err := unix.Munmap(md.data); err != nil {
			_ = md.file.Close()
			return errors.WithStack(err)
		}
		md.data = nil
	}
	return errors.WithStack(md.file.Close())
}
