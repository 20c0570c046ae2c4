package crcforge

import (
	"bytes"
	"io"
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	crc "github.com/bodgit/crcforge/crc32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T, dir string, b []byte) string {
	f, err := ioutil.TempFile(dir, "crcforge")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write(b)
	require.NoError(t, err)

	return f.Name()
}

func randomBytes(t *testing.T, r *rand.Rand, n int) []byte {
	b := make([]byte, n)
	_, err := r.Read(b)
	require.NoError(t, err)
	return b
}

func TestForgeRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "crcforge")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	r := rand.New(rand.NewSource(1))
	before := randomBytes(t, r, 100)
	path := tempFile(t, dir, before)

	require.NoError(t, ForgeFile(path, 50, 0xdeadbeef))

	sum, err := ChecksumFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), sum)

	// only the four patched bytes may differ
	after, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before[:50], after[:50])
	assert.Equal(t, before[54:], after[54:])
}

func TestForgeOffsets(t *testing.T) {
	dir, err := ioutil.TempDir("", "crcforge")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	r := rand.New(rand.NewSource(2))
	for _, offset := range []int64{0, 1, 17, 60} {
		for i := 0; i < 10; i++ {
			path := tempFile(t, dir, randomBytes(t, r, 64))
			want := r.Uint32()

			require.NoError(t, ForgeFile(path, offset, want))

			sum, err := ChecksumFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, sum)
		}
	}
}

func TestForgeBoundary(t *testing.T) {
	dir, err := ioutil.TempDir("", "crcforge")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	r := rand.New(rand.NewSource(3))
	path := tempFile(t, dir, randomBytes(t, r, 32))

	// offset + 4 == length is the last valid offset
	require.NoError(t, ForgeFile(path, 28, 0xcafebabe))
	sum, err := ChecksumFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xcafebabe), sum)

	assert.Equal(t, ErrOffsetRange, ForgeFile(path, 29, 0xcafebabe))
	assert.Equal(t, ErrOffsetRange, ForgeFile(path, -1, 0xcafebabe))
}

func TestForgeCurrentChecksum(t *testing.T) {
	dir, err := ioutil.TempDir("", "crcforge")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	r := rand.New(rand.NewSource(4))
	before := randomBytes(t, r, 48)
	path := tempFile(t, dir, before)

	sum, err := ChecksumFile(path)
	require.NoError(t, err)

	// forging to the current checksum is a zero delta
	require.NoError(t, ForgeFile(path, 10, sum))

	after, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// truncatedStore claims to be longer than the data it can actually
// serve, to get past the length check.
type truncatedStore struct {
	*bytes.Reader
	length int64
}

func (s *truncatedStore) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekEnd && offset == 0 {
		return s.length, nil
	}
	return s.Reader.Seek(offset, whence)
}

func (s *truncatedStore) Write(p []byte) (int, error) {
	return len(p), nil
}

func TestForgeShortRead(t *testing.T) {
	s := &truncatedStore{
		Reader: bytes.NewReader(make([]byte, 8)),
		length: 16,
	}

	assert.Equal(t, ErrShortRead, Forge(s, 10, 0xdeadbeef))
}

func TestCombine(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	a := randomBytes(t, r, 57)
	b := randomBytes(t, r, 100)

	crc1, crc2 := crc.Checksum(a), crc.Checksum(b)

	assert.Equal(t, crc.Checksum(append(a[:len(a):len(a)], b...)), Combine(crc1, crc2, int64(len(b))))
	assert.Equal(t, crc1, Combine(crc1, crc2, 0))
}

func TestForgeMissingFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "crcforge")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	err = ForgeFile(filepath.Join(dir, "missing"), 0, 0xdeadbeef)
	assert.True(t, os.IsNotExist(err))
}
