package crc32

import (
	crc "hash/crc32"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	assert.Equal(t, uint32(0xd6b555a0), Checksum([]byte("george")))

	// compare against the independent stdlib implementation
	for _, s := range []string{
		"",
		"a",
		"abc",
		"123456789",
		"george",
		"The quick brown fox jumps over the lazy dog",
	} {
		assert.Equal(t, crc.ChecksumIEEE([]byte(s)), Checksum([]byte(s)), s)
	}
}

func TestStreaming(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	data := make([]byte, 64<<10)
	_, err := r.Read(data)
	require.NoError(t, err)

	want := Checksum(data)
	assert.Equal(t, crc.ChecksumIEEE(data), want)

	// feeding the same data in random sized chunks must not change the
	// result
	var sum uint32
	for rest := data; len(rest) > 0; {
		n := r.Intn(len(rest)) + 1
		sum = Update(sum, rest[:n])
		rest = rest[n:]
	}
	assert.Equal(t, want, sum)

	h := New()
	for rest := data; len(rest) > 0; {
		n := r.Intn(len(rest)) + 1
		_, err := h.Write(rest[:n])
		require.NoError(t, err)
		rest = rest[n:]
	}
	assert.Equal(t, want, h.Sum32())
}

func TestSum(t *testing.T) {
	h := New()
	_, err := h.Write([]byte("george"))
	require.NoError(t, err)

	assert.Equal(t, []byte{0xd6, 0xb5, 0x55, 0xa0}, h.Sum(nil))
}

func TestReset(t *testing.T) {
	h := New()
	_, err := h.Write([]byte("garbage"))
	require.NoError(t, err)

	h.Reset()
	_, err = h.Write([]byte("george"))
	require.NoError(t, err)

	assert.Equal(t, uint32(0xd6b555a0), h.Sum32())
}
