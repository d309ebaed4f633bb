package main

import (
	"errors"
	"fmt"
	stdimage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/gbprinter"
	"github.com/bodgit/gbprinter/capture"
	"github.com/bodgit/gbprinter/image"
	"github.com/urfave/cli/v2"
)

const defaultDB = "gbprinter.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func options(c *cli.Context) (gbprinter.Options, error) {
	opts := gbprinter.DefaultOptions()

	name := c.String("palette")
	p, ok := image.Palette(name)
	if file := c.String("palette-file"); file != "" {
		f, err := os.Open(file)
		if err != nil {
			return opts, err
		}
		defer f.Close()

		custom, err := image.LoadPalettes(f)
		if err != nil {
			return opts, err
		}
		if cp, found := custom[name]; found {
			p, ok = cp, true
		}
	}
	if !ok {
		return opts, fmt.Errorf("unknown palette %q", name)
	}
	opts.Palette = p

	format, err := image.ParseFormat(c.String("format"))
	if err != nil {
		return opts, err
	}
	opts.Format = format

	if opts.Scale = c.Int("scale"); opts.Scale < 1 {
		return opts, errors.New("scale must be at least 1")
	}

	policy, err := capture.ParseDecodePolicy(c.String("on-decode-error"))
	if err != nil {
		return opts, err
	}
	opts.Config.DecodeFailure = policy
	opts.Config.EmitUnterminated = c.Bool("emit-unterminated")
	if c.Bool("quiet-orphans") {
		opts.Config.Orphans = capture.DropOrphans
	}

	return opts, opts.Config.Validate()
}

// newPrinter builds a Printer from the global flags, opening the database
// only when needed.
func newPrinter(c *cli.Context, withDB bool) (*gbprinter.Printer, func(), error) {
	opts, err := options(c)
	if err != nil {
		return nil, nil, err
	}

	var db *gbprinter.CaptureDB
	closer := func() {}
	if withDB {
		db, err = gbprinter.NewCaptureDB(c.String("db"))
		if err != nil {
			return nil, nil, err
		}
		closer = func() { db.Close() }
	}

	return gbprinter.New(db, newLogger(c), opts), closer, nil
}

func requireArg(c *cli.Context) {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
}

func printFiles(files []string) {
	for _, f := range files {
		fmt.Println(f)
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "gbprinter"
	app.Usage = "Game Boy Printer capture decoder"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"GBPRINTER_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.StringFlag{
			Name:    "palette",
			Aliases: []string{"p"},
			EnvVars: []string{"GBPRINTER_PALETTE"},
			Value:   image.DefaultPalette,
			Usage:   "palette used to color the images",
		},
		&cli.StringFlag{
			Name:    "palette-file",
			EnvVars: []string{"GBPRINTER_PALETTE_FILE"},
			Usage:   "TOML file of additional palettes",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   image.PNG.String(),
			Usage:   "output format, png, jpg or bmp",
		},
		&cli.IntFlag{
			Name:  "scale",
			Value: 1,
			Usage: "integer scale factor for output images",
		},
		&cli.StringFlag{
			Name:  "on-decode-error",
			Value: capture.SkipTile.String(),
			Usage: "what to do with a bad tile record, skip, blank or fail",
		},
		&cli.BoolFlag{
			Name:  "emit-unterminated",
			Usage: "also write an image left unfinished at the end of a capture",
		},
		&cli.BoolFlag{
			Name:  "quiet-orphans",
			Usage: "don't report tiles printed before any INIT",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "decode",
			Usage:     "Decode capture files into images",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "directory to write images to",
				},
			},
			Action: func(c *cli.Context) error {
				requireArg(c)

				p, closer, err := newPrinter(c, false)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				for _, file := range c.Args().Slice() {
					files, err := p.DecodeFile(file, c.String("output"))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					printFiles(files)
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Scan a directory tree and decode every capture",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "directory to write images to",
				},
			},
			Action: func(c *cli.Context) error {
				requireArg(c)

				p, closer, err := newPrinter(c, false)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if err := p.Scan(c.Args().First(), c.String("output")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Import captures into the database",
			ArgsUsage: "FILE...",
			Action: func(c *cli.Context) error {
				requireArg(c)

				p, closer, err := newPrinter(c, true)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				for _, file := range c.Args().Slice() {
					sha, err := p.Import(file)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					fmt.Println(sha)
				}

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List captures in the database",
			Action: func(c *cli.Context) error {
				db, err := gbprinter.NewCaptureDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				captures, err := db.List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				for _, cp := range captures {
					fmt.Printf("%s %s\n", cp.SHA1, cp.Name)
				}

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Decode a capture from the database into images",
			ArgsUsage: "SHA1",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   cwd,
					Usage:   "directory to write images to",
				},
			},
			Action: func(c *cli.Context) error {
				requireArg(c)

				p, closer, err := newPrinter(c, true)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				files, err := p.Export(c.Args().First(), c.String("output"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				printFiles(files)

				return nil
			},
		},
		{
			Name:      "encode",
			Usage:     "Encode an image as a capture",
			ArgsUsage: "IMAGE",
			Action: func(c *cli.Context) error {
				requireArg(c)

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				m, _, err := stdimage.Decode(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := capture.Encode(os.Stdout, m, capture.DefaultConfig().FinalizeMargin); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "packets",
			Usage:     "Convert a hex dump of raw printer packets",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "decode",
					Usage: "write images rather than the converted capture",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "directory to write images to",
				},
			},
			Action: func(c *cli.Context) error {
				requireArg(c)

				p, closer, err := newPrinter(c, false)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if c.Bool("decode") {
					files, err := p.DecodePacketFile(c.Args().First(), c.String("output"))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					printFiles(files)
					return nil
				}

				text, err := p.ConvertPackets(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Print(text)

				return nil
			},
		},
		{
			Name:  "palettes",
			Usage: "List the built-in palettes",
			Action: func(c *cli.Context) error {
				for _, name := range image.Names() {
					fmt.Println(name)
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
