package crcforge

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ChecksumDB records the known-good checksum of every scanned file so
// a later pass can spot anything that changed.
type ChecksumDB struct {
	db *sql.DB
}

func NewChecksumDB(file string) (*ChecksumDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS checksum (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, size INTEGER NOT NULL, crc TEXT NOT NULL)"); err != nil {
		return nil, err
	}

	return &ChecksumDB{
		db: db,
	}, nil
}

func (db *ChecksumDB) Close() error {
	return db.db.Close()
}

// SetChecksum records the checksum and size for path, replacing any
// previous record.
func (db *ChecksumDB) SetChecksum(path string, size int64, crc string) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO checksum (path, size, crc) VALUES (?, ?, ?)", path, size, crc); err != nil {
		return err
	}
	return nil
}

// FindChecksumByPath returns the recorded checksum and size for path,
// or an empty checksum if the path has never been scanned.
func (db *ChecksumDB) FindChecksumByPath(path string) (string, int64, error) {
	var crc string
	var size int64
	switch err := db.db.QueryRow("SELECT crc, size FROM checksum WHERE path = ?", path).Scan(&crc, &size); err {
	case sql.ErrNoRows:
		return "", 0, nil
	case nil:
		return crc, size, nil
	default:
		return "", 0, err
	}
}

// FindPathsByCRC returns every recorded path whose checksum matches
// crc.
func (db *ChecksumDB) FindPathsByCRC(crc string) ([]string, error) {
	rows, err := db.db.Query("SELECT path FROM checksum WHERE crc = ? ORDER BY path", crc)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, rows.Err()
}
