package persistence

import (
	"io"

	"github.com/pkg/errors"

	"github.com/outofforest/wearlevel/sectors"
)

// Dev is the interface required from the device.
type Dev interface {
	io.ReadWriteSeeker
	Sync() error
	Size() int64
}

// Store gives raw byte-range access to the device address space. It adds no
// retries and no partial-write recovery; whatever the device reports is
// passed straight to the caller.
type Store struct {
	dev Dev
}

// NewStore returns a store backed by the device.
func NewStore(dev Dev) *Store {
	return &Store{
		dev: dev,
	}
}

// Read reads len(p) bytes starting at the address.
func (s *Store) Read(address sectors.Address, p []byte) error {
	if len(p) == 0 {
		return errors.Errorf("invalid size of output buffer: %d", len(p))
	}

	if _, err := s.dev.Seek(int64(address), io.SeekStart); err != nil {
		return errors.WithStack(err)
	}
	if _, err := s.dev.Read(p); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Write writes p starting at the address.
func (s *Store) Write(address sectors.Address, p []byte) error {
	if len(p) == 0 {
		return errors.Errorf("invalid size of input buffer: %d", len(p))
	}

	if _, err := s.dev.Seek(int64(address), io.SeekStart); err != nil {
		return errors.WithStack(err)
	}
	if _, err := s.dev.Write(p); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Sync forces data to be written to the dev.
func (s *Store) Sync() error {
	return errors.WithStack(s.dev.Sync())
}
