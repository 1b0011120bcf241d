/*
Package bitmap implements a decoder for the uncompressed 24-bit BMP images
used as sign glyphs.

The file starts with a 14 byte file header followed by a 40 byte info header.
Only the pixel data offset, the width, the signed height and the bit depth
are used. A negative height means the rows are stored top to bottom,
otherwise the last row of the image is stored first. Each row holds one
blue, green, red triple per pixel and is padded to a multiple of four bytes.
*/
package bitmap

const (
	headerSize   = 54
	bitsPerPixel = 24
	bytesPerPix  = bitsPerPixel / 8

	offsetField = 10
	widthField  = 18
	heightField = 22
	depthField  = 28
)

// Stride returns the number of bytes used by one stored row of the given
// width, including padding.
func Stride(width int) int {
	return (width*bytesPerPix + 3) &^ 3
}
