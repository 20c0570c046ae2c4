package crcforge

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"strconv"

	crc "github.com/bodgit/crcforge/crc32"
)

// ChecksumFile returns the CRC-32 checksum of the entire contents of
// file.
func ChecksumFile(file string) (uint32, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := crc.New()
	if _, err = io.Copy(h, f); err != nil {
		return 0, err
	}

	return h.Sum32(), nil
}

// FormatChecksum renders a checksum in its conventional textual form,
// eight upper case hexadecimal digits.
func FormatChecksum(sum uint32) string {
	return fmt.Sprintf("%.*X", crc32.Size<<1, sum)
}

// ParseChecksum parses a checksum in its conventional textual form:
// exactly eight hexadecimal digits with no sign prefix.
func ParseChecksum(s string) (uint32, error) {
	if len(s) != crc32.Size<<1 || s[0] == '+' || s[0] == '-' {
		return 0, ErrInvalidChecksum
	}
	sum, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, ErrInvalidChecksum
	}
	return uint32(sum), nil
}

func crcFile(file string) (string, error) {
	sum, err := ChecksumFile(file)
	if err != nil {
		return "", err
	}
	return FormatChecksum(sum), nil
}
