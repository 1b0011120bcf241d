// Package config loads the sign configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"io/ioutil"
	"time"

	"github.com/bodgit/signboard/mode"
	"github.com/bodgit/signboard/stations"
	"gopkg.in/yaml.v3"
)

// Config is the complete sign configuration.
type Config struct {
	Panel    Panel    `yaml:"panel"`
	Assets   Assets   `yaml:"assets"`
	Timing   Timing   `yaml:"timing"`
	Layout   Layout   `yaml:"layout"`
	IDs      IDs      `yaml:"ids"`
	Stations Stations `yaml:"stations"`
	Server   Server   `yaml:"server"`
}

// Panel is the size of the LED matrix.
type Panel struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Assets locates the images and tables.
type Assets struct {
	Root string `yaml:"root"`
	Full string `yaml:"full"`
	Type string `yaml:"type"`
	Dest string `yaml:"dest"`
	Next string `yaml:"next"`
}

// Timing holds the loop and animation intervals.
type Timing struct {
	Poll   time.Duration `yaml:"poll"`
	Toggle time.Duration `yaml:"toggle"`
	Scroll time.Duration `yaml:"scroll"`
}

// Point is a panel coordinate or size.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (p Point) point() image.Point {
	return image.Pt(p.X, p.Y)
}

// Layout positions the parts of each mode.
type Layout struct {
	Type   Point `yaml:"type"`
	Dest   Point `yaml:"dest"`
	Next   Point `yaml:"next"`
	Scroll Point `yaml:"scroll"` // size of the scrolling window at Next
}

// IDs describes how table ids are laid out.
type IDs struct {
	Reserved  int `yaml:"reserved"`
	Unset     int `yaml:"unset"`
	Boundary  int `yaml:"boundary"`
	LineA     int `yaml:"line_a"`
	LineB     int `yaml:"line_b"`
	JunctionA int `yaml:"junction_a"`
	JunctionB int `yaml:"junction_b"`
}

// Stations holds the marker images framing the stop list.
type Stations struct {
	Start     string `yaml:"start"`
	Separator string `yaml:"separator"`
	End       string `yaml:"end"`
	Overflow  string `yaml:"overflow"`
	Cap       int    `yaml:"cap"`
}

// Server configures the control interface.
type Server struct {
	Listen string `yaml:"listen"`
}

// Default returns the configuration of the stock 128x32 sign.
func Default() *Config {
	m := mode.DefaultConfig()
	return &Config{
		Panel: Panel{
			Width:  128,
			Height: 32,
		},
		Assets: Assets{
			Root: ".",
			Full: "/list/list_full.csv",
			Type: "/list/list_type.csv",
			Dest: "/list/list_dest.csv",
			Next: "/list/list_next.csv",
		},
		Timing: Timing{
			Poll:   5 * time.Millisecond,
			Toggle: m.ToggleInterval,
			Scroll: m.ScrollInterval,
		},
		Layout: Layout{
			Type:   Point{m.Type.X, m.Type.Y},
			Dest:   Point{m.Dest.X, m.Dest.Y},
			Next:   Point{m.Next.X, m.Next.Y},
			Scroll: Point{m.ScrollSize.X, m.ScrollSize.Y},
		},
		IDs: IDs{
			Reserved:  m.Reserved,
			Unset:     m.Unset,
			Boundary:  m.Boundary,
			LineA:     m.LineA,
			LineB:     m.LineB,
			JunctionA: m.Stations.JunctionA,
			JunctionB: m.Stations.JunctionB,
		},
		Stations: Stations{
			Start:     m.Stations.Start,
			Separator: m.Stations.Separator,
			End:       m.Stations.End,
			Overflow:  m.Stations.Overflow,
			Cap:       m.Stations.Cap,
		},
		Server: Server{
			Listen: ":8080",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values that would stop the sign from running.
func (c *Config) Validate() error {
	switch {
	case c.Panel.Width <= 0 || c.Panel.Height <= 0:
		return fmt.Errorf("invalid panel size %dx%d", c.Panel.Width, c.Panel.Height)
	case c.Timing.Poll <= 0:
		return errors.New("poll interval must be positive")
	case c.Timing.Toggle <= 0 || c.Timing.Scroll <= 0:
		return errors.New("animation intervals must be positive")
	case c.Stations.Cap <= 0:
		return errors.New("station cap must be positive")
	case c.Layout.Scroll.X <= 0 || c.Layout.Scroll.Y <= 0:
		return errors.New("scroll window must not be empty")
	}
	return nil
}

// Marshal returns c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Mode returns the display mode settings.
func (c *Config) Mode() mode.Config {
	return mode.Config{
		Reserved:       c.IDs.Reserved,
		Unset:          c.IDs.Unset,
		Boundary:       c.IDs.Boundary,
		LineA:          c.IDs.LineA,
		LineB:          c.IDs.LineB,
		Type:           c.Layout.Type.point(),
		Dest:           c.Layout.Dest.point(),
		Next:           c.Layout.Next.point(),
		ScrollSize:     c.Layout.Scroll.point(),
		ToggleInterval: c.Timing.Toggle,
		ScrollInterval: c.Timing.Scroll,
		Stations:       c.StationList(),
	}
}

// StationList returns the stop list settings.
func (c *Config) StationList() stations.Config {
	return stations.Config{
		Start:     c.Stations.Start,
		Separator: c.Stations.Separator,
		End:       c.Stations.End,
		Overflow:  c.Stations.Overflow,
		Cap:       c.Stations.Cap,
		Boundary:  c.IDs.Boundary,
		JunctionA: c.IDs.JunctionA,
		JunctionB: c.IDs.JunctionB,
	}
}
