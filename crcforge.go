/*
Package crcforge computes CRC-32 checksums and forges them: given a
file, a byte offset and a desired checksum value, it rewrites the four
bytes at that offset so the whole file hashes to the desired value.

Forging works because CRC-32 is linear over GF(2); the required patch
is recovered exactly with the polynomial arithmetic in the gf2
subpackage rather than by search.
*/
package crcforge

import "log"

type CRCForge struct {
	db     *ChecksumDB
	logger *log.Logger
}

func New(db *ChecksumDB, logger *log.Logger) *CRCForge {
	return &CRCForge{
		db:     db,
		logger: logger,
	}
}
