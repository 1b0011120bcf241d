package bitmap

import (
	"encoding/binary"
	"errors"
	"io"
	"io/ioutil"

	"github.com/bodgit/signboard/pixel"
)

var (
	// ErrShortHeader is returned when the header cannot be read in full.
	ErrShortHeader = errors.New("bitmap: short header")
	// ErrNotBitmap is returned when the signature is missing.
	ErrNotBitmap = errors.New("bitmap: not a bitmap")
	// ErrUnsupported is returned for any bit depth other than 24.
	ErrUnsupported = errors.New("bitmap: unsupported bit depth")
	// ErrBadOffset is returned when the pixel data would start inside the
	// header.
	ErrBadOffset = errors.New("bitmap: invalid pixel data offset")
)

// Config describes a bitmap without its pixels.
type Config struct {
	Width   int
	Height  int
	Offset  int
	TopDown bool
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	config Config
	buffer *pixel.Buffer

	tmp [headerSize]byte
}

func (d *decoder) readHeader() error {
	if err := readFull(d.r, d.tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return ErrShortHeader
	}

	if d.tmp[0] != 'B' || d.tmp[1] != 'M' {
		return ErrNotBitmap
	}

	if binary.LittleEndian.Uint16(d.tmp[depthField:]) != bitsPerPixel {
		return ErrUnsupported
	}

	height := int32(binary.LittleEndian.Uint32(d.tmp[heightField:]))

	d.config = Config{
		Width:   int(int32(binary.LittleEndian.Uint32(d.tmp[widthField:]))),
		Height:  int(height),
		Offset:  int(binary.LittleEndian.Uint32(d.tmp[offsetField:])),
		TopDown: height < 0,
	}
	if d.config.TopDown {
		d.config.Height = -d.config.Height
	}

	if d.config.Offset < headerSize {
		return ErrBadOffset
	}

	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	b, err := pixel.New(d.config.Width, d.config.Height)
	if err != nil {
		return err
	}

	// Skip anything between the header and the pixel data
	if skip := int64(d.config.Offset - headerSize); skip > 0 {
		if _, err := io.CopyN(ioutil.Discard, d.r, skip); err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}

	row := make([]byte, Stride(d.config.Width))
	for y := 0; y < d.config.Height; y++ {
		if err := readFull(d.r, row); err != nil {
			return err
		}

		dy := d.config.Height - 1 - y
		if d.config.TopDown {
			dy = y
		}

		dst := b.Row(dy)
		for x := range dst {
			dst[x] = pixel.FromRGB(row[x*bytesPerPix+2], row[x*bytesPerPix+1], row[x*bytesPerPix])
		}
	}

	d.buffer = b

	return nil
}

// Decode reads a bitmap from r and returns it as a pixel buffer. Nothing is
// returned unless every row was read.
func Decode(r io.Reader) (*pixel.Buffer, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.buffer, nil
}

// DecodeConfig returns the dimensions and layout of a bitmap without
// decoding the pixel data.
func DecodeConfig(r io.Reader) (Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return Config{}, err
	}
	return d.config, nil
}
