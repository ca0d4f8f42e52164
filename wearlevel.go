package wearlevel

import (
	"github.com/pkg/errors"

	"github.com/outofforest/wearlevel/persistence"
	"github.com/outofforest/wearlevel/sectors"
)

// Store rotates writes of a single logical record across the sectors of the
// table, so no region of the device takes every write. One store owns one
// record; callers must not run its operations concurrently.
type Store struct {
	store      *persistence.Store
	table      sectors.Table
	recordSize int
	checksum   sectors.Checksum
}

// New returns new store. The record size includes the trailing checksum field
// and is fixed for the lifetime of the store. Nil checksum selects
// sectors.Sum16.
func New(store *persistence.Store, table sectors.Table, recordSize int, checksum sectors.Checksum) (*Store, error) {
	if err := table.Validate(recordSize); err != nil {
		return nil, err
	}
	if checksum == nil {
		checksum = sectors.Sum16
	}
	return &Store{
		store:      store,
		table:      table,
		recordSize: recordSize,
		checksum:   checksum,
	}, nil
}

// RecordSize returns the on-device size of the record, trailing checksum
// included.
func (s *Store) RecordSize() int {
	return s.recordSize
}

// Checksum returns the checksum function used to validate records.
func (s *Store) Checksum() sectors.Checksum {
	return s.checksum
}

// Load scans the sectors in ascending order and returns the first record
// whose sector is active and whose trailing checksum validates, together with
// the index it was found in. Lower index wins if several sectors are active;
// the remaining active sectors are left untouched and go stale.
//
// If no sector validates, the table is erased, sector 0 is activated and a
// zero-filled record is persisted there; the zero record and index 0 are
// returned. Finding nothing is not an error, callers distinguish a cold start
// by inspecting the returned record.
func (s *Store) Load() ([]byte, int, error) {
	status := make([]byte, 1)
	for i := 0; i < s.table.Len(); i++ {
		sector := s.table.Sector(i)

		if err := s.store.Read(sector.StatusAddress, status); err != nil {
			return nil, 0, err
		}
		if sectors.Status(status[0]) != sectors.Active {
			continue
		}

		record := make([]byte, s.recordSize)
		if err := s.store.Read(sector.DataAddress, record); err != nil {
			return nil, 0, err
		}
		if sectors.Valid(record, s.checksum) {
			return record, i, nil
		}
	}

	return s.initialize()
}

// Write retires the current sector and commits the payload into the next one
// in rotation, returning the new active index. Rotation is unconditional,
// (current+1) mod N, which is what spreads wear evenly across the table.
//
// The caller must have embedded the trailing checksum in the payload already
// (see sectors.Seal); Write never computes or verifies it.
//
// The current sector is deactivated before the next one is activated, so for
// a moment no sector is active. Power loss inside that window sends the next
// Load down the cold-start path even though the previous payload bytes are
// still intact in the retired sector.
func (s *Store) Write(payload []byte, current int) (int, error) {
	if len(payload) != s.recordSize {
		return 0, errors.Errorf("invalid payload size, expected: %d, got: %d", s.recordSize, len(payload))
	}
	if current < 0 || current >= s.table.Len() {
		return 0, errors.Errorf("sector index out of range: %d", current)
	}

	if err := s.store.Write(s.table.Sector(current).StatusAddress, []byte{byte(sectors.Inactive)}); err != nil {
		return 0, err
	}

	next := (current + 1) % s.table.Len()
	sector := s.table.Sector(next)
	if err := s.store.Write(sector.StatusAddress, []byte{byte(sectors.Active)}); err != nil {
		return 0, err
	}
	if err := s.store.Write(sector.DataAddress, payload); err != nil {
		return 0, err
	}
	return next, nil
}

// ClearSector marks the sector inactive and zeroes its data region.
func (s *Store) ClearSector(index int) error {
	if index < 0 || index >= s.table.Len() {
		return errors.Errorf("sector index out of range: %d", index)
	}

	sector := s.table.Sector(index)
	if err := s.store.Write(sector.StatusAddress, []byte{byte(sectors.Inactive)}); err != nil {
		return err
	}
	return s.store.Write(sector.DataAddress, make([]byte, s.recordSize))
}

// ClearAll clears every sector, in ascending order.
func (s *Store) ClearAll() error {
	for i := 0; i < s.table.Len(); i++ {
		if err := s.ClearSector(i); err != nil {
			return err
		}
	}
	return nil
}

// Sync forces data to be written to the device. Operations never sync
// implicitly; durability points are the caller's decision.
func (s *Store) Sync() error {
	return s.store.Sync()
}

func (s *Store) initialize() ([]byte, int, error) {
	if err := s.ClearAll(); err != nil {
		return nil, 0, err
	}

	sector := s.table.Sector(0)
	if err := s.store.Write(sector.StatusAddress, []byte{byte(sectors.Active)}); err != nil {
		return nil, 0, err
	}

	// The record stays literally zero-filled, checksum field included.
	record := make([]byte, s.recordSize)
	if err := s.store.Write(sector.DataAddress, record); err != nil {
		return nil, 0, err
	}
	return record, 0, nil
}
