package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/bodgit/signboard"
	"github.com/bodgit/signboard/config"
	"github.com/bodgit/signboard/control"
	"github.com/bodgit/signboard/convert"
	"github.com/bodgit/signboard/mode"
	"github.com/bodgit/signboard/preview"
	"github.com/bodgit/signboard/render"
	"github.com/bodgit/signboard/stations"
	"github.com/bodgit/signboard/store"
	"github.com/bodgit/signboard/surface"
	"github.com/bodgit/signboard/table"
	"github.com/urfave/cli/v2"
)

const defaultConfig = "signboard.yaml"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	return config.Load(c.String("config"))
}

func loadTables(c *cli.Context, cfg *config.Config, st store.Store) (mode.Tables, func() error, error) {
	if c.String("db") == "" {
		tables, err := signboard.CSVTables(cfg, st)
		return tables, func() error { return nil }, err
	}

	db, err := table.NewDB(c.String("db"))
	if err != nil {
		return mode.Tables{}, nil, err
	}
	return signboard.DBTables(db), db.Close, nil
}

func atoi(c *cli.Context, n int) (int, error) {
	arg := c.Args().Get(n)
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid number \"%s\"", arg)
	}
	return i, nil
}

func run(c *cli.Context) error {
	logger := newLogger(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	st := store.Dir(cfg.Assets.Root)

	tables, closeTables, err := loadTables(c, cfg, st)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer closeTables()

	var (
		s      render.Surface
		framer control.Framer
		window *preview.Window
	)

	if c.Bool("preview") {
		window, err = preview.New(cfg.Panel.Width, cfg.Panel.Height, c.Int("scale"))
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		// The window is driven like panel hardware, flushed once per poll
		d, err := surface.NewDrawer(window.Device())
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer d.Halt()
		s, framer = d, d
	} else {
		m, err := surface.NewMemory(cfg.Panel.Width, cfg.Panel.Height)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		s, framer = m, m
	}

	state := control.NewState(control.DefaultTuple())

	sb, err := signboard.New(cfg, tables, st, s, state, logger)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := control.NewServer(state, st, framer, logger)
	go func() {
		if err := server.Listen(cfg.Server.Listen); err != nil {
			logger.Printf("Unable to serve on %s: %v\n", cfg.Server.Listen, err)
			stop()
		}
	}()
	defer server.Shutdown()

	done := make(chan error, 1)
	go func() {
		done <- sb.Run(ctx)
	}()

	if window != nil {
		if err := window.Run(ctx); err != nil {
			return cli.NewExitError(err, 1)
		}
		stop()
	}

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func split(c *cli.Context, logger *log.Logger) error {
	width, err := atoi(c, 2)
	if err != nil {
		return err
	}
	height, err := atoi(c, 3)
	if err != nil {
		return err
	}

	f, err := os.Open(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	tiles, err := convert.Split(m, width, height, c.Int("spacing"))
	if err != nil {
		return err
	}

	var names []string
	if c.String("names") != "" {
		if names, err = readNames(c.String("names")); err != nil {
			return err
		}
	}

	dir := c.Args().Get(1)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i, tile := range tiles {
		name := fmt.Sprintf("tile_%03d", i)
		if i < len(names) {
			name = names[i]
		}
		file := filepath.Join(dir, name+".bmp")

		if err := writeBitmap(file, tile, c.Int("colors")); err != nil {
			return err
		}
		logger.Printf("Wrote \"%s\"\n", file)
	}

	return nil
}

func readNames(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	return names, scanner.Err()
}

func writeBitmap(file string, m image.Image, colors int) error {
	if colors > 0 {
		m = convert.Reduce(m, colors)
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := convert.WriteBMP(f, m); err != nil {
		return err
	}
	return f.Close()
}

func main() {
	app := cli.NewApp()

	app.Name = "signboard"
	app.Usage = "Train destination sign driver"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"SIGNBOARD_CONFIG"},
			Value:   defaultConfig,
			Usage:   "path to configuration file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	dbFlag := &cli.StringFlag{
		Name:    "db",
		EnvVars: []string{"SIGNBOARD_DB"},
		Usage:   "read tables from database instead of CSV",
	}

	colorsFlag := &cli.IntFlag{
		Name:  "colors",
		Usage: "reduce to at most this many colors, 0 to keep all",
	}

	app.Commands = []*cli.Command{
		{
			Name:      "run",
			Usage:     "Drive the sign and serve the control interface",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				dbFlag,
				&cli.BoolFlag{
					Name:  "preview",
					Usage: "show the panel in a window",
				},
				&cli.IntFlag{
					Name:  "scale",
					Value: 8,
					Usage: "preview window pixels per LED",
				},
			},
			Action: run,
		},
		{
			Name:      "import",
			Usage:     "Import CSV tables into a database",
			ArgsUsage: "DATABASE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, err := loadConfig(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				db, err := table.NewDB(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := signboard.Import(db, cfg, store.Dir(cfg.Assets.Root)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "lookup",
			Usage:     "Print a table field",
			ArgsUsage: "TABLE ID FIELD",
			Flags:     []cli.Flag{dbFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				id, err := atoi(c, 1)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				cfg, err := loadConfig(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				tables, closeTables, err := loadTables(c, cfg, store.Dir(cfg.Assets.Root))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closeTables()

				var r table.Reader
				switch c.Args().Get(0) {
				case signboard.FullTable:
					r = tables.Full
				case signboard.TypeTable:
					r = tables.Type
				case signboard.DestTable:
					r = tables.Dest
				case signboard.NextTable:
					r = tables.Next
				default:
					return cli.NewExitError(fmt.Errorf("unknown table \"%s\"", c.Args().Get(0)), 1)
				}

				value, err := r.Lookup(id, c.Args().Get(2))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Println(value)

				return nil
			},
		},
		{
			Name:      "stations",
			Usage:     "Print the images making up a stop list",
			ArgsUsage: "DEPARTURE DESTINATION TYPE",
			Flags:     []cli.Flag{dbFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				var ids [3]int
				for i := range ids {
					n, err := atoi(c, i)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					ids[i] = n
				}

				cfg, err := loadConfig(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				tables, closeTables, err := loadTables(c, cfg, store.Dir(cfg.Assets.Root))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closeTables()

				a := stations.New(tables.Next, tables.Type, cfg.StationList(), newLogger(c))
				paths, overflow := a.Build(ids[0], ids[1], ids[2])
				for _, path := range paths {
					fmt.Println(path)
				}
				if overflow {
					fmt.Fprintln(os.Stderr, "stop list truncated")
				}

				return nil
			},
		},
		{
			Name:      "convert",
			Usage:     "Convert artwork to bitmaps",
			ArgsUsage: "SOURCE TARGET",
			Flags:     []cli.Flag{colorsFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				src, dst := c.Args().Get(0), c.Args().Get(1)

				info, err := os.Stat(src)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if info.IsDir() {
					err = signboard.ConvertDir(src, dst, c.Int("colors"), newLogger(c))
				} else {
					err = signboard.ConvertFile(src, dst, c.Int("colors"))
				}
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "split",
			Usage:     "Split a sprite sheet into bitmaps",
			ArgsUsage: "SHEET DIRECTORY WIDTH HEIGHT",
			Flags: []cli.Flag{
				colorsFlag,
				&cli.IntFlag{
					Name:  "spacing",
					Usage: "pixels between tiles",
				},
				&cli.StringFlag{
					Name:  "names",
					Usage: "file with one output name per line",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 4 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := split(c, newLogger(c)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "config",
			Usage:     "Print the effective configuration",
			ArgsUsage: " ",
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				b, err := cfg.Marshal()
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				os.Stdout.Write(b)

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
