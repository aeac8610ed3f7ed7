package capture

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"strings"
	"sync"
	"sync/atomic"
)

const dataURIPrefix = "data:image/png;base64,"

var errDimensionMismatch = errors.New("pixel buffer does not match dimensions")

// PNGEncoder encodes RGB8 or RGBA8 buffers as PNG.
type PNGEncoder struct {
	level atomic.Int64
	pool  *encoderBufferPool
}

// NewPNGEncoder returns an encoder using the given compression level.
func NewPNGEncoder(level png.CompressionLevel) *PNGEncoder {
	e := &PNGEncoder{pool: &encoderBufferPool{}}
	e.level.Store(int64(level))
	return e
}

// SetLevel changes the compression level used by later encodes.
func (e *PNGEncoder) SetLevel(level png.CompressionLevel) { e.level.Store(int64(level)) }

// Level returns the current compression level.
func (e *PNGEncoder) Level() png.CompressionLevel { return png.CompressionLevel(e.level.Load()) }

// ParseCompression maps a config name onto a PNG compression level.
// Unknown names select the default level.
func ParseCompression(name string) png.CompressionLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "speed", "fast":
		return png.BestSpeed
	case "best":
		return png.BestCompression
	case "none":
		return png.NoCompression
	default:
		return png.DefaultCompression
	}
}

// Encode implements Encoder. A buffer whose length does not equal
// width*height*channels is rejected with an *EncodingError.
func (e *PNGEncoder) Encode(ctx context.Context, pix []byte, channels, width, height int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || (channels != 3 && channels != 4) || len(pix) != width*height*channels {
		return nil, &EncodingError{Width: width, Height: height, Channels: channels, Len: len(pix), Err: errDimensionMismatch}
	}
	rect := image.Rect(0, 0, width, height)
	var img image.Image
	if channels == 4 {
		img = &image.NRGBA{Pix: pix, Stride: width * 4, Rect: rect}
	} else {
		out := image.NewRGBA(rect)
		for i, j := 0, 0; i < len(pix); i, j = i+3, j+4 {
			out.Pix[j] = pix[i]
			out.Pix[j+1] = pix[i+1]
			out.Pix[j+2] = pix[i+2]
			out.Pix[j+3] = 0xff
		}
		img = out
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: e.Level(), BufferPool: e.pool}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, &EncodingError{Width: width, Height: height, Channels: channels, Len: len(pix), Err: err}
	}
	return buf.Bytes(), nil
}

// DataURI wraps PNG bytes in a base64 data URI.
func DataURI(pngBytes []byte) string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(pngBytes)
}

// DecodeDataURI returns the PNG bytes held by a data URI built with DataURI.
func DecodeDataURI(uri string) ([]byte, error) {
	payload, ok := strings.CutPrefix(uri, dataURIPrefix)
	if !ok {
		return nil, errors.New("not a png data uri")
	}
	return base64.StdEncoding.DecodeString(payload)
}

// encoderBufferPool lets consecutive encodes reuse zlib and filter buffers.
type encoderBufferPool struct{ p sync.Pool }

func (bp *encoderBufferPool) Get() *png.EncoderBuffer {
	if v, ok := bp.p.Get().(*png.EncoderBuffer); ok {
		return v
	}
	return nil
}

func (bp *encoderBufferPool) Put(b *png.EncoderBuffer) { bp.p.Put(b) }
