package crcforge

import "errors"

// Common errors returned by crcforge operations.
var (
	// ErrInvalidChecksum indicates checksum text that is not exactly
	// eight unsigned hexadecimal digits.
	ErrInvalidChecksum = errors.New("crcforge: invalid CRC-32 value")

	// ErrOffsetRange indicates the byte offset plus 4 exceeds the
	// length of the byte store.
	ErrOffsetRange = errors.New("crcforge: byte offset plus 4 exceeds file length")

	// ErrShortRead indicates fewer than 4 bytes could be read at the
	// offset.
	ErrShortRead = errors.New("crcforge: cannot read 4 bytes at offset")

	// ErrVerification indicates the checksum after patching did not
	// match the desired value. The patch has already been written when
	// this is returned; it signals an internal arithmetic fault, not
	// bad input.
	ErrVerification = errors.New("crcforge: failed to update CRC-32 to desired value")

	// ErrChecksumMismatch indicates at least one scanned file no
	// longer matches its recorded checksum.
	ErrChecksumMismatch = errors.New("crcforge: checksum mismatch")
)
