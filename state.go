package wearlevel

import (
	"unsafe"

	"github.com/outofforest/photon"
	"github.com/pkg/errors"

	"github.com/outofforest/wearlevel/sectors"
)

// RecordSize returns the on-device record size for values of type T: the raw
// memory representation of T followed by the trailing checksum field.
func RecordSize[T comparable]() int {
	var v T
	return int(unsafe.Sizeof(v)) + sectors.ChecksumSize
}

// State persists one fixed-size struct through the sector store. It is the
// caller on the byte-level contract: it seals the trailing checksum before
// rotating and tracks the active sector index between saves.
type State[T comparable] struct {
	store  *Store
	active int
}

// OpenState loads the most recent committed value of T from the store. On a
// cold start the zero value of T is returned.
func OpenState[T comparable](store *Store) (*State[T], T, error) {
	var v T
	if store.RecordSize() != RecordSize[T]() {
		return nil, v, errors.Errorf("record size mismatch, store: %d, type %T: %d",
			store.RecordSize(), v, RecordSize[T]())
	}

	record, active, err := store.Load()
	if err != nil {
		return nil, v, err
	}

	v = *photon.NewFromBytes[T](record).V
	return &State[T]{
		store:  store,
		active: active,
	}, v, nil
}

// Active returns the index of the sector holding the last committed value.
func (s *State[T]) Active() int {
	return s.active
}

// Save commits the value into the next sector in rotation.
func (s *State[T]) Save(v T) error {
	record := make([]byte, s.store.RecordSize())
	copy(record, photon.NewFromValue(&v).B)
	sectors.Seal(record, s.store.Checksum())

	active, err := s.store.Write(record, s.active)
	if err != nil {
		return err
	}
	s.active = active
	return nil
}

// Reset erases every sector and reloads, returning the zero value of T with
// sector 0 active again.
func (s *State[T]) Reset() (T, error) {
	var v T
	if err := s.store.ClearAll(); err != nil {
		return v, err
	}

	record, active, err := s.store.Load()
	if err != nil {
		return v, err
	}
	s.active = active
	return *photon.NewFromBytes[T](record).V, nil
}
