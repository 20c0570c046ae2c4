package crcforge

import (
	"io"
	"math/bits"
	"os"

	crc "github.com/bodgit/crcforge/crc32"
	"github.com/bodgit/crcforge/gf2"
)

// CRC-32 keeps its register bit-reversed relative to the underlying
// polynomial. These two convert between the conventional value seen by
// users and the algebraic form the gf2 package operates on, so the
// reversal never leaks into the arithmetic.
func toAlgebraic(sum uint32) uint32 { return bits.Reverse32(sum) }

func toConventional(p uint32) uint32 { return bits.Reverse32(p) }

// checksum returns the whole-store checksum of r in algebraic form,
// leaving the position at the end of the store.
func checksum(r io.ReadSeeker) (uint32, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	h := crc.New()
	if _, err := io.Copy(h, r); err != nil {
		return 0, err
	}

	return toAlgebraic(h.Sum32()), nil
}

// Forge rewrites the four bytes at offset so that the CRC-32 checksum
// of the entire byte store becomes want, leaving every other byte
// untouched. The desired value is the conventional checksum as
// displayed by tools such as cksum or zlib.
//
// Any error before the write leaves the store unmodified. If
// ErrVerification is returned the patch has already been written.
func Forge(rw io.ReadWriteSeeker, offset int64, want uint32) error {
	length, err := rw.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if offset < 0 || offset+4 > length {
		return ErrOffsetRange
	}

	sum, err := checksum(rw)
	if err != nil {
		return err
	}

	// Changing four bytes at offset perturbs the final checksum by the
	// local xor multiplied by x^((length-offset)*8); invert that factor
	// to solve for the local xor.
	delta := uint64(sum ^ toAlgebraic(want))
	factor, err := gf2.ReciprocalMod(gf2.PowMod(2, uint64(length-offset)*8))
	if err != nil {
		return err
	}
	delta = gf2.MulMod(factor, delta)

	if _, err := rw.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	var patch [4]byte
	if _, err := io.ReadFull(rw, patch[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrShortRead
		}
		return err
	}

	rev := toConventional(uint32(delta))
	for i := range patch {
		patch[i] ^= byte(rev >> uint(8*i))
	}

	if _, err := rw.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	if _, err := rw.Write(patch[:]); err != nil {
		return err
	}

	sum, err = checksum(rw)
	if err != nil {
		return err
	}
	if toConventional(sum) != want {
		return ErrVerification
	}

	return nil
}

// ForgeFile opens path read-write and forges its checksum in place.
func ForgeFile(path string, offset int64, want uint32) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	return Forge(f, offset, want)
}

// Combine returns the checksum of the concatenation of two byte
// sequences given only their individual checksums and the length in
// bytes of the second, using the same linearity that Forge exploits.
func Combine(crc1, crc2 uint32, len2 int64) uint32 {
	if len2 <= 0 {
		return crc1
	}

	shifted := gf2.MulMod(uint64(toAlgebraic(crc1)), gf2.PowMod(2, uint64(len2)*8))
	return toConventional(uint32(shifted)) ^ crc2
}
