package crcforge

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/bodgit/crcforge/sfv"
)

const workers = 10

func (m *CRCForge) findDirectories(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(dir string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a directory
			if !info.Mode().IsDir() {
				return nil
			}

			select {
			case out <- dir:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

// eachFile calls fn for every regular non-hidden file directly inside
// dir, skipping any manifest file.
func eachFile(dir string, fn func(file string, info os.FileInfo) error) error {
	return filepath.Walk(dir, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.Name()[0] == '.' {
			if info.Mode().IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		// Only consider files in the "top" directory
		if filepath.Dir(file) != dir {
			return nil
		}

		if info.Name() == sfv.Filename {
			return nil
		}

		return fn(file, info)
	})
}

func (m *CRCForge) scanWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			if err := eachFile(dir, func(file string, info os.FileInfo) error {
				crc, err := crcFile(file)
				if err != nil {
					return err
				}

				if err := m.db.SetChecksum(file, info.Size(), crc); err != nil {
					return err
				}
				m.logger.Printf("Recorded \"%s\" for \"%s\"\n", crc, file)

				return nil
			}); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func (m *CRCForge) verifyWorker(ctx context.Context, in <-chan string, mismatches *int64) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			if err := eachFile(dir, func(file string, info os.FileInfo) error {
				want, size, err := m.db.FindChecksumByPath(file)
				if err != nil {
					return err
				}
				if want == "" {
					m.logger.Printf("No checksum recorded for \"%s\"\n", file)
					return nil
				}

				crc, err := crcFile(file)
				if err != nil {
					return err
				}

				if crc != want || info.Size() != size {
					atomic.AddInt64(mismatches, 1)
					m.logger.Printf("Mismatch for \"%s\": recorded \"%s\" (%d bytes), computed \"%s\" (%d bytes)\n", file, want, size, crc, info.Size())
				}

				return nil
			}); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func (m *CRCForge) sfvWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			db := sfv.New()
			if err := eachFile(dir, func(file string, info os.FileInfo) error {
				sum, err := ChecksumFile(file)
				if err != nil {
					return err
				}
				db.Set(filepath.Base(file), sum)
				return nil
			}); err != nil {
				errc <- err
				return
			}

			if db.Length() > 0 {
				b, err := db.MarshalText()
				if err != nil {
					errc <- err
					return
				}

				if err := ioutil.WriteFile(filepath.Join(dir, sfv.Filename), b, 0644); err != nil {
					errc <- err
					return
				}
			}
		}
	}()
	return errc, nil
}

func (m *CRCForge) checkWorker(ctx context.Context, in <-chan string, mismatches *int64) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			b, err := ioutil.ReadFile(filepath.Join(dir, sfv.Filename))
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				errc <- err
				return
			}

			db := sfv.New()
			if err := db.UnmarshalText(b); err != nil {
				errc <- err
				return
			}

			for _, name := range db.Names() {
				want, _ := db.Get(name)
				sum, err := ChecksumFile(filepath.Join(dir, name))
				if err != nil {
					if os.IsNotExist(err) {
						atomic.AddInt64(mismatches, 1)
						m.logger.Printf("Missing file \"%s\"\n", filepath.Join(dir, name))
						continue
					}
					errc <- err
					return
				}

				if sum != want {
					atomic.AddInt64(mismatches, 1)
					m.logger.Printf("Mismatch for \"%s\": recorded \"%s\", computed \"%s\"\n", filepath.Join(dir, name), FormatChecksum(want), FormatChecksum(sum))
				}
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func (m *CRCForge) run(path string, worker func(context.Context, <-chan string) (<-chan error, error)) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	dirs, errc, err := m.findDirectories(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := worker(ctx, dirs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}

// Scan walks path and records the checksum and size of every regular
// file in the database.
func (m *CRCForge) Scan(path string) error {
	return m.run(path, m.scanWorker)
}

// Verify walks path, recomputes every recorded checksum and returns
// ErrChecksumMismatch if any file has changed. Individual mismatches
// are reported through the logger.
func (m *CRCForge) Verify(path string) error {
	var mismatches int64
	if err := m.run(path, func(ctx context.Context, in <-chan string) (<-chan error, error) {
		return m.verifyWorker(ctx, in, &mismatches)
	}); err != nil {
		return err
	}

	if mismatches > 0 {
		return ErrChecksumMismatch
	}
	return nil
}

// CreateSFV walks path and writes a Simple File Verification manifest
// into every directory that contains at least one regular file.
func (m *CRCForge) CreateSFV(path string) error {
	return m.run(path, m.sfvWorker)
}

// CheckSFV walks path and verifies every directory against its
// manifest, if it has one. Returns ErrChecksumMismatch if any file has
// changed or gone missing.
func (m *CRCForge) CheckSFV(path string) error {
	var mismatches int64
	if err := m.run(path, func(ctx context.Context, in <-chan string) (<-chan error, error) {
		return m.checkWorker(ctx, in, &mismatches)
	}); err != nil {
		return err
	}

	if mismatches > 0 {
		return ErrChecksumMismatch
	}
	return nil
}
