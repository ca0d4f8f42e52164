// Command sectorctl is a playground CLI for the wearlevel package.
//
// Usage:
//
//	sectorctl --file image.bin [--sectors 4 --spacing 4096 --record-size 66] format
//	sectorctl --file image.bin dump
//	sectorctl --file image.bin store <hex-body>
//	sectorctl --file image.bin clear <index>
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/outofforest/wearlevel"
	"github.com/outofforest/wearlevel/persistence"
	"github.com/outofforest/wearlevel/pkg/filedev"
	"github.com/outofforest/wearlevel/sectors"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("sectorctl", pflag.ContinueOnError)
	path := flags.String("file", "", "path to the device image")
	numSectors := flags.Int("sectors", sectors.DefaultNumSectors, "number of sectors")
	spacing := flags.Uint64("spacing", 0x1000, "byte distance between sector status fields")
	recordSize := flags.Int("record-size", 66, "record size including the 2-byte checksum field")
	if err := flags.Parse(args); err != nil {
		return errors.WithStack(err)
	}
	args = flags.Args()

	if *path == "" {
		return errors.New("--file is required")
	}
	if len(args) == 0 {
		return errors.New("command is required: format, dump, store or clear")
	}

	table := sectors.Spaced(0, sectors.Address(*spacing), *numSectors)

	f, err := os.OpenFile(*path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	span := int64(*spacing)*int64(*numSectors-1) + 2 + int64(*recordSize)
	info, err := f.Stat()
	if err != nil {
		return errors.WithStack(err)
	}
	if info.Size() < span {
		if err := f.Truncate(span); err != nil {
			return errors.WithStack(err)
		}
	}

	store, err := wearlevel.New(persistence.NewStore(filedev.New(f)), table, *recordSize, nil)
	if err != nil {
		return err
	}

	switch args[0] {
	case "format":
		if err := store.ClearAll(); err != nil {
			return err
		}
		return store.Sync()

	case "dump":
		record, active, err := store.Load()
		if err != nil {
			return err
		}
		fmt.Printf("active sector: %d\n", active)
		fmt.Print(hex.Dump(record))
		return nil

	case "store":
		if len(args) < 2 {
			return errors.New("store requires a hex-encoded record body")
		}
		body, err := hex.DecodeString(args[1])
		if err != nil {
			return errors.WithStack(err)
		}
		if len(body) != *recordSize-sectors.ChecksumSize {
			return errors.Errorf("record body must be %d bytes, got: %d",
				*recordSize-sectors.ChecksumSize, len(body))
		}

		_, active, err := store.Load()
		if err != nil {
			return err
		}

		record := make([]byte, *recordSize)
		copy(record, body)
		sectors.Seal(record, store.Checksum())

		next, err := store.Write(record, active)
		if err != nil {
			return err
		}
		if err := store.Sync(); err != nil {
			return err
		}
		fmt.Printf("active sector: %d\n", next)
		return nil

	case "clear":
		if len(args) < 2 {
			return errors.New("clear requires a sector index")
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.WithStack(err)
		}
		if err := store.ClearSector(index); err != nil {
			return err
		}
		return store.Sync()

	default:
		return errors.Errorf("unknown command: %q", args[0])
	}
}
