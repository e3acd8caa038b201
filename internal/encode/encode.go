// Package encode packs a flattened shape encoding into texel data for the
// per-frame 1-D shapes texture.
package encode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// TexelSize is the byte size of one RGBA32Float texel.
const TexelSize = 16

var (
	// ErrMalformed is returned when the float count is not a multiple of 3.
	ErrMalformed = errors.New("encode: encoding length is not a multiple of 3")

	// ErrTooLarge is returned when the encoding needs more texels than a
	// 1-D texture can hold.
	ErrTooLarge = errors.New("encode: encoding exceeds the maximum 1-D texture width")
)

// Texels is a packed shapes texture ready for upload.
type Texels struct {
	// Data holds Width RGBA32Float texels in little-endian byte order.
	Data []byte

	// Width is the texel count, always at least 1.
	Width uint32
}

// BytesPerRow returns the row pitch of the texture data.
func (t Texels) BytesPerRow() uint32 { return t.Width * TexelSize }

// Pack converts floats into RGBA32Float texels, one texel per RGB triple
// with alpha set to 0. An empty encoding yields a single zero texel, which
// decodes as the end marker. maxWidth of 0 disables the width check.
func Pack(floats []float32, maxWidth uint32) (Texels, error) {
	if len(floats)%3 != 0 {
		return Texels{}, fmt.Errorf("%w: got %d floats", ErrMalformed, len(floats))
	}
	n := len(floats) / 3
	if n == 0 {
		n = 1
	}
	if maxWidth > 0 && uint64(n) > uint64(maxWidth) {
		return Texels{}, fmt.Errorf("%w: %d texels, limit %d", ErrTooLarge, n, maxWidth)
	}

	data := make([]byte, n*TexelSize)
	for i := 0; i+3 <= len(floats); i += 3 {
		off := (i / 3) * TexelSize
		binary.LittleEndian.PutUint32(data[off:], math.Float32bits(floats[i]))
		binary.LittleEndian.PutUint32(data[off+4:], math.Float32bits(floats[i+1]))
		binary.LittleEndian.PutUint32(data[off+8:], math.Float32bits(floats[i+2]))
	}
	return Texels{Data: data, Width: uint32(n)}, nil //nolint:gosec // bounded by maxWidth
}

// Unpack reverses Pack, dropping the alpha channel. It is used by tests and
// diagnostics to inspect uploaded data.
func Unpack(data []byte) []float32 {
	n := len(data) / TexelSize
	out := make([]float32, 0, n*3)
	for i := 0; i < n; i++ {
		off := i * TexelSize
		out = append(out,
			math.Float32frombits(binary.LittleEndian.Uint32(data[off:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:])),
		)
	}
	return out
}
