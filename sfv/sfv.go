/*
Package sfv implements the Simple File Verification manifest written to
each scanned directory, mapping filenames to their CRC-32 checksums.

The format is the conventional plain-text one: optional comment lines
starting with ";" followed by one "name CRC32" entry per line, with the
checksum as eight upper case hexadecimal digits.
*/
package sfv

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Filename is the expected filename used when writing to disk
const Filename = "checksums.sfv"

// DB is the manifest object. It implements the encoding.TextMarshaler
// and encoding.TextUnmarshaler interfaces.
type DB struct {
	checksums map[string]uint32
}

// New returns an empty manifest
func New() *DB {
	return &DB{
		checksums: make(map[string]uint32),
	}
}

// Length returns the number of entries in the manifest
func (db *DB) Length() int {
	return len(db.checksums)
}

// Set stores the checksum for the given filename, replacing any
// previous entry
func (db *DB) Set(name string, crc uint32) {
	db.checksums[name] = crc
}

// Get returns the checksum recorded for the given filename
func (db *DB) Get(name string) (uint32, bool) {
	crc, ok := db.checksums[name]
	return crc, ok
}

// Names returns every filename in the manifest, sorted
func (db *DB) Names() []string {
	names := make([]string, 0, len(db.checksums))
	for name := range db.checksums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalText encodes the manifest into textual form and returns the
// result
func (db *DB) MarshalText() ([]byte, error) {
	b := new(bytes.Buffer)

	fmt.Fprintf(b, "; %d files\n", len(db.checksums))
	for _, name := range db.Names() {
		if strings.ContainsAny(name, "\r\n") {
			return nil, fmt.Errorf("sfv: filename %q contains a line break", name)
		}
		fmt.Fprintf(b, "%s %08X\n", name, db.checksums[name])
	}

	return b.Bytes(), nil
}

// UnmarshalText decodes the manifest from textual form, replacing any
// existing entries
func (db *DB) UnmarshalText(text []byte) error {
	checksums := make(map[string]uint32)

	s := bufio.NewScanner(bytes.NewReader(text))
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		i := strings.LastIndexByte(line, ' ')
		if i < 1 {
			return fmt.Errorf("sfv: malformed line %q", line)
		}

		value := line[i+1:]
		if len(value) != 8 {
			return fmt.Errorf("sfv: malformed checksum %q", value)
		}
		crc, err := strconv.ParseUint(value, 16, 32)
		if err != nil {
			return fmt.Errorf("sfv: malformed checksum %q", value)
		}

		checksums[strings.TrimRight(line[:i], " ")] = uint32(crc)
	}
	if err := s.Err(); err != nil {
		return err
	}

	db.checksums = checksums
	return nil
}
