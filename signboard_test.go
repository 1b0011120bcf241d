package signboard

import (
	"context"
	"errors"
	"image/color"
	"io/ioutil"
	"log"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/bodgit/signboard/bitmap/bitmaptest"
	"github.com/bodgit/signboard/config"
	"github.com/bodgit/signboard/control"
	"github.com/bodgit/signboard/mode"
	"github.com/bodgit/signboard/pixel"
	"github.com/bodgit/signboard/store"
	"github.com/bodgit/signboard/surface"
	"github.com/bodgit/signboard/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.RGBA{0xff, 0, 0, 0xff}
	blue = color.RGBA{0, 0, 0xff, 0xff}
)

func assets() store.Store {
	return store.FS(fstest.MapFS{
		"list/list_full.csv": &fstest.MapFile{Data: []byte("ID,path\n1,/img/full/1.bmp\n2,/img/full/2.bmp\n")},
		"list/list_type.csv": &fstest.MapFile{Data: []byte("ID,large,JP,EN,className\n1,/img/type/1.bmp,,,local\n")},
		"list/list_dest.csv": &fstest.MapFile{Data: []byte("ID,large,JP,EN\n900,/img/dest/900.bmp,,\n")},
		"list/list_next.csv": &fstest.MapFile{Data: []byte("ID,JP,EN,Scroll,type\n1,,,,local\n")},
		"img/full/1.bmp":     &fstest.MapFile{Data: bitmaptest.Solid(128, 32, red)},
		"img/full/2.bmp":     &fstest.MapFile{Data: bitmaptest.Solid(128, 32, blue)},
		"img/type/1.bmp":     &fstest.MapFile{Data: bitmaptest.Solid(48, 16, blue)},
		"img/dest/900.bmp":   &fstest.MapFile{Data: bitmaptest.Solid(80, 16, red)},
	})
}

type flushingSurface struct {
	*surface.Memory
	flushes int
	err     error
}

func (f *flushingSurface) Flush() error {
	f.flushes++
	return f.err
}

func newSignboard(t *testing.T) (*Signboard, *flushingSurface, *control.State) {
	cfg := config.Default()
	st := assets()

	tables, err := CSVTables(cfg, st)
	require.NoError(t, err)

	m, err := surface.NewMemory(cfg.Panel.Width, cfg.Panel.Height)
	require.NoError(t, err)
	s := &flushingSurface{Memory: m}

	state := control.NewState(control.DefaultTuple())

	sb, err := New(cfg, tables, st, s, state, log.New(ioutil.Discard, "", 0))
	require.NoError(t, err)

	return sb, s, state
}

func TestPoll(t *testing.T) {
	sb, s, state := newSignboard(t)

	sb.Poll(time.Now())
	assert.Equal(t, mode.Full, sb.Active())
	assert.Equal(t, pixel.FromRGB(0xff, 0, 0), s.Snapshot().Pixel(64, 16))
	assert.Equal(t, 1, s.flushes)

	one, dest := 1, 900
	state.Set(control.Update{Mode: &one, Dest: &dest})
	sb.Poll(time.Now())
	assert.Equal(t, mode.TypeDest, sb.Active())
	assert.Equal(t, pixel.FromRGB(0, 0, 0xff), s.Snapshot().Pixel(0, 0))
	assert.Equal(t, pixel.FromRGB(0xff, 0, 0), s.Snapshot().Pixel(127, 15))
	assert.Equal(t, pixel.RGB565(0), s.Snapshot().Pixel(0, 31))

	// Flush failures are logged, not fatal
	s.err = errors.New("spi: timeout")
	sb.Poll(time.Now())
	assert.Equal(t, 3, s.flushes)
}

func TestRun(t *testing.T) {
	sb, s, state := newSignboard(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sb.Run(ctx)
	}()

	two := 2
	state.Set(control.Update{Full: &two})

	require.Eventually(t, func() bool {
		return s.Snapshot().Pixel(0, 0) == pixel.FromRGB(0, 0, 0xff)
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.Equal(t, context.Canceled, <-done)
}

func TestTables(t *testing.T) {
	cfg := config.Default()
	st := assets()

	db, err := table.NewDB(filepath.Join(t.TempDir(), "signboard.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Import(db, cfg, st))

	tables := DBTables(db)
	value, err := tables.Type.Lookup(1, "className")
	require.NoError(t, err)
	assert.Equal(t, "local", value)

	value, err = tables.Full.Lookup(2, "path")
	require.NoError(t, err)
	assert.Equal(t, "/img/full/2.bmp", value)

	cfg.Assets.Next = "/list/missing.csv"
	assert.Error(t, Import(db, cfg, st))
	_, err = CSVTables(cfg, st)
	assert.Error(t, err)
}
