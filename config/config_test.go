package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/bodgit/signboard/mode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, mode.DefaultConfig(), cfg.Mode())
	assert.Equal(t, 5*time.Millisecond, cfg.Timing.Poll)
	assert.Equal(t, ":8080", cfg.Server.Listen)
}

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func write(t *testing.T, data string) string {
	path := filepath.Join(t.TempDir(), "signboard.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(write(t, `
panel:
  width: 64
timing:
  toggle: 2s
  scroll: 50ms
layout:
  next:
    x: 32
    y: 16
ids:
  boundary: 200
stations:
  cap: 8
server:
  listen: 127.0.0.1:9000
`))
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Panel.Width)
	assert.Equal(t, 32, cfg.Panel.Height)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Listen)

	m := cfg.Mode()
	assert.Equal(t, 2*time.Second, m.ToggleInterval)
	assert.Equal(t, 50*time.Millisecond, m.ScrollInterval)
	assert.Equal(t, 32, m.Next.X)
	assert.Equal(t, 200, m.Boundary)
	assert.Equal(t, 200, m.Stations.Boundary)
	assert.Equal(t, 8, m.Stations.Cap)
	assert.Equal(t, "/img/Scroll/ScrollStart.bmp", m.Stations.Start)
}

func TestLoadErrors(t *testing.T) {
	for _, data := range []string{
		"panel: [",
		"panel:\n  width: 0\n",
		"timing:\n  poll: 0s\n",
		"timing:\n  toggle: soon\n",
		"stations:\n  cap: 0\n",
	} {
		_, err := Load(write(t, data))
		assert.Error(t, err, data)
	}
}

func TestMarshal(t *testing.T) {
	b, err := Default().Marshal()
	require.NoError(t, err)

	cfg, err := Load(write(t, string(b)))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
