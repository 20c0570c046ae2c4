package crcforge

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChecksum(t *testing.T) {
	tables := []struct {
		s    string
		sum  uint32
		fail bool
	}{
		{"DEADBEEF", 0xdeadbeef, false},
		{"deadbeef", 0xdeadbeef, false},
		{"00000000", 0, false},
		{"0000000", 0, true},
		{"000000000", 0, true},
		{"+0000000", 0, true},
		{"-0000000", 0, true},
		{"0000000G", 0, true},
		{"", 0, true},
	}

	for _, table := range tables {
		sum, err := ParseChecksum(table.s)
		if table.fail {
			assert.Equal(t, ErrInvalidChecksum, err, table.s)
		} else {
			require.NoError(t, err, table.s)
			assert.Equal(t, table.sum, sum, table.s)
		}
	}
}

func TestFormatChecksum(t *testing.T) {
	assert.Equal(t, "DEADBEEF", FormatChecksum(0xdeadbeef))
	assert.Equal(t, "00000001", FormatChecksum(1))
}

func TestChecksumFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "crcforge")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := tempFile(t, dir, []byte("george"))

	sum, err := ChecksumFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xd6b555a0), sum)

	crc, err := crcFile(path)
	require.NoError(t, err)
	assert.Equal(t, "D6B555A0", crc)
}
