package control

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"io/ioutil"
	"log"
	"strconv"
	"strings"

	"github.com/bodgit/signboard/mode"
	"github.com/bodgit/signboard/pixel"
	"github.com/bodgit/signboard/store"
	"github.com/gofiber/fiber/v2"
)

const (
	indexPath = "/index.html"
	tablePath = "/test_csv.html"
	listDir   = "list"
)

// Framer supplies a copy of what is currently on the panel.
type Framer interface {
	Snapshot() *pixel.Buffer
}

// Status is the JSON form of the tuple.
type Status struct {
	Mode int `json:"mode"`
	Full int `json:"full"`
	Type int `json:"type"`
	Dest int `json:"dest"`
	Dep  int `json:"dep"`
	Next int `json:"next"`
}

func newStatus(t mode.Tuple) Status {
	return Status{
		Mode: int(t.Mode),
		Full: t.Full,
		Type: t.Type,
		Dest: t.Dest,
		Dep:  t.Dep,
		Next: t.Next,
	}
}

// Server is the HTTP control interface.
type Server struct {
	app    *fiber.App
	state  *State
	store  store.Store
	framer Framer
	logger *log.Logger
}

// NewServer returns a Server updating state, serving static files from st
// and frames from framer, which may be nil.
func NewServer(state *State, st store.Store, framer Framer, logger *log.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
		state:  state,
		store:  st,
		framer: framer,
		logger: logger,
	}

	s.app.Get("/", s.index)
	s.app.Get("/send", s.send)
	s.app.Get("/status", s.status)
	s.app.Get("/frame", s.frame)
	s.app.Get("/test", s.tables)
	s.app.Get("/list/:file", s.list)

	return s
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Printf("Listening on %s\n", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) send(c *fiber.Ctx) error {
	var u Update
	for _, f := range []struct {
		key string
		dst **int
	}{
		{"mode", &u.Mode},
		{"full", &u.Full},
		{"type", &u.Type},
		{"dest", &u.Dest},
		{"dep", &u.Dep},
		{"next", &u.Next},
	} {
		v := c.Query(f.key)
		if v == "" {
			continue
		}
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("Invalid value for %s", f.key))
		}
		*f.dst = &i
	}

	if u.Empty() {
		return c.Status(fiber.StatusBadRequest).SendString("No values supplied")
	}

	t := s.state.Set(u)
	s.logger.Printf("Updated to mode %d full %d type %d dest %d dep %d next %d\n", t.Mode, t.Full, t.Type, t.Dest, t.Dep, t.Next)

	return c.JSON(newStatus(t))
}

func (s *Server) status(c *fiber.Ctx) error {
	return c.JSON(newStatus(s.state.Snapshot()))
}

func (s *Server) frame(c *fiber.Ctx) error {
	if s.framer == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("No frame available")
	}

	b := s.framer.Snapshot()
	if b.Empty() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("No frame available")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, b); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to encode image")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentLength, strconv.Itoa(buf.Len()))
	return c.Send(buf.Bytes())
}

func (s *Server) file(c *fiber.Ctx, path, kind string) error {
	f, err := s.store.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, store.ErrNoPath) {
			return c.Status(fiber.StatusNotFound).SendString("Not found")
		}
		s.logger.Printf("Unable to open \"%s\": %v\n", path, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to open file")
	}
	defer f.Close()

	b, err := ioutil.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to read file")
	}

	c.Type(kind)
	return c.Send(b)
}

func (s *Server) index(c *fiber.Ctx) error {
	return s.file(c, indexPath, "html")
}

// tables serves the page for browsing the CSV tables.
func (s *Server) tables(c *fiber.Ctx) error {
	return s.file(c, tablePath, "html")
}

func (s *Server) list(c *fiber.Ctx) error {
	path := store.Clean(listDir + "/" + c.Params("file"))
	if !strings.HasPrefix(path, listDir+"/") {
		return c.Status(fiber.StatusNotFound).SendString("Not found")
	}
	return s.file(c, "/"+path, "csv")
}
