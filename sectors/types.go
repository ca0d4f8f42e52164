package sectors

import (
	"sort"

	"github.com/pkg/errors"
)

// Status is the value stored in the 1-byte status field of a sector.
type Status byte

// Sector statuses.
const (
	// Inactive marks a sector which does not hold the current record.
	Inactive Status = 0x00

	// Active marks a sector considered to hold the current record.
	Active Status = 0x01
)

// Address is an absolute byte address on the device.
type Address uint64

// ChecksumSize is the width of the trailing checksum field of a record.
const ChecksumSize = 2

// DefaultNumSectors is the number of sectors used when nothing else is configured.
const DefaultNumSectors = 4

// Sector describes the two regions belonging to one sector: the 1-byte status
// field and the data region holding the record.
type Sector struct {
	StatusAddress Address
	DataAddress   Address
}

// Table is an immutable list of sectors eligible to hold the record. It is
// built once during initialization and passed into every store; there is no
// package-level state.
type Table struct {
	sectors []Sector
}

// NewTable returns a table over a copy of the provided sectors.
func NewTable(s []Sector) Table {
	sectors := make([]Sector, len(s))
	copy(sectors, s)
	return Table{sectors: sectors}
}

// Spaced returns a table of n sectors spread evenly across the device address
// space: sector i has its status field at first+i*spacing and its data region
// 2 bytes above it (the status field is padded to 2 bytes).
func Spaced(first, spacing Address, n int) Table {
	sectors := make([]Sector, 0, n)
	for i := 0; i < n; i++ {
		statusAddress := first + Address(i)*spacing
		sectors = append(sectors, Sector{
			StatusAddress: statusAddress,
			DataAddress:   statusAddress + 2,
		})
	}
	return Table{sectors: sectors}
}

// Len returns the number of sectors in the table.
func (t Table) Len() int {
	return len(t.sectors)
}

// Sector returns the sector stored under the index.
func (t Table) Sector(index int) Sector {
	return t.sectors[index]
}

// Validate verifies that the table is usable for records of the given size:
// there is at least one sector, the record is big enough to carry the trailing
// checksum, and no status field or data region overlaps another one.
func (t Table) Validate(recordSize int) error {
	if len(t.sectors) == 0 {
		return errors.New("table contains no sectors")
	}
	if recordSize < ChecksumSize {
		return errors.Errorf("record size is too small, minimum: %d, got: %d", ChecksumSize, recordSize)
	}

	type region struct {
		start Address
		end   Address
	}

	regions := make([]region, 0, 2*len(t.sectors))
	for _, s := range t.sectors {
		regions = append(regions,
			region{start: s.StatusAddress, end: s.StatusAddress + 1},
			region{start: s.DataAddress, end: s.DataAddress + Address(recordSize)},
		)
	}
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].start < regions[j].start
	})
	for i := 1; i < len(regions); i++ {
		if regions[i].start < regions[i-1].end {
			return errors.Errorf("sector regions overlap at address %d", regions[i].start)
		}
	}
	return nil
}
