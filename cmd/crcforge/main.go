package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bodgit/crcforge"
	"github.com/urfave/cli/v2"
)

const defaultDB = "crcforge.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openForge(c *cli.Context) (*crcforge.CRCForge, *crcforge.ChecksumDB, error) {
	db, err := crcforge.NewChecksumDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}
	return crcforge.New(db, newLogger(c)), db, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "crcforge"
	app.Usage = "CRC-32 computation and forging utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"CRCFORGE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to checksum database",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "sum",
			Usage:       "Compute the CRC-32 checksum of one or more files",
			Description: "",
			ArgsUsage:   "FILE...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				for _, file := range c.Args().Slice() {
					sum, err := crcforge.ChecksumFile(file)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					fmt.Printf("%s  %s\n", crcforge.FormatChecksum(sum), file)
				}

				return nil
			},
		},
		{
			Name:        "forge",
			Usage:       "Patch four bytes of a file so it has the desired CRC-32 checksum",
			Description: "",
			ArgsUsage:   "FILE OFFSET CHECKSUM",
			Action: func(c *cli.Context) error {
				if c.NArg() != 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				offset, err := strconv.ParseInt(c.Args().Get(1), 10, 64)
				if err != nil {
					return cli.NewExitError("invalid byte offset", 1)
				}
				if offset < 0 {
					return cli.NewExitError("negative byte offset", 1)
				}

				want, err := crcforge.ParseChecksum(c.Args().Get(2))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				file := c.Args().First()
				sum, err := crcforge.ChecksumFile(file)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Printf("Original CRC-32: %s\n", crcforge.FormatChecksum(sum))

				if err := crcforge.ForgeFile(file, offset, want); err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Println("New CRC-32 successfully verified")

				return nil
			},
		},
		{
			Name:        "combine",
			Usage:       "Combine two CRC-32 checksums into the checksum of the concatenation",
			Description: "LENGTH is the length in bytes of the data behind the second checksum",
			ArgsUsage:   "CHECKSUM1 CHECKSUM2 LENGTH",
			Action: func(c *cli.Context) error {
				if c.NArg() != 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				crc1, err := crcforge.ParseChecksum(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				crc2, err := crcforge.ParseChecksum(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				len2, err := strconv.ParseInt(c.Args().Get(2), 10, 64)
				if err != nil || len2 < 0 {
					return cli.NewExitError("invalid length", 1)
				}

				fmt.Println(crcforge.FormatChecksum(crcforge.Combine(crc1, crc2, len2)))

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and record checksums",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, db, err := openForge(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := m.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "verify",
			Usage:       "Verify filesystem against recorded checksums",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, db, err := openForge(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := m.Verify(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "sfv",
			Usage:       "Write a Simple File Verification manifest into each directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m := crcforge.New(nil, newLogger(c))

				if err := m.CreateSFV(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "check",
			Usage:       "Check each directory against its Simple File Verification manifest",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m := crcforge.New(nil, newLogger(c))

				if err := m.CheckSFV(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "lookup",
			Usage:       "Find recorded files with the given checksum",
			Description: "",
			ArgsUsage:   "CHECKSUM",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				crc, err := crcforge.ParseChecksum(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				_, db, err := openForge(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				paths, err := db.FindPathsByCRC(crcforge.FormatChecksum(crc))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				for _, path := range paths {
					fmt.Println(path)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
