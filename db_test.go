package crcforge

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumDB(t *testing.T) {
	dir, err := ioutil.TempDir("", "crcforge")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := NewChecksumDB(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.SetChecksum("/a", 3, "DEADBEEF"))

	crc, size, err := db.FindChecksumByPath("/a")
	require.NoError(t, err)
	assert.Equal(t, "DEADBEEF", crc)
	assert.Equal(t, int64(3), size)

	// unknown paths are not an error
	crc, size, err = db.FindChecksumByPath("/missing")
	require.NoError(t, err)
	assert.Equal(t, "", crc)
	assert.Equal(t, int64(0), size)

	// recording again replaces the previous row
	require.NoError(t, db.SetChecksum("/a", 4, "CAFEBABE"))

	crc, size, err = db.FindChecksumByPath("/a")
	require.NoError(t, err)
	assert.Equal(t, "CAFEBABE", crc)
	assert.Equal(t, int64(4), size)

	require.NoError(t, db.SetChecksum("/b", 1, "CAFEBABE"))

	paths, err := db.FindPathsByCRC("CAFEBABE")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, paths)

	paths, err = db.FindPathsByCRC("00000000")
	require.NoError(t, err)
	assert.Empty(t, paths)
}
