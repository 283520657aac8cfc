package imageproc

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"golang.org/x/image/bmp"
)

func opaqueImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}

	return img
}

func translucentImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: uint8((x + y) % 256)})
		}
	}

	return img
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, opaqueImage(w, h), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}

	return buf.Bytes()
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	return buf.Bytes()
}

func gifBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := gif.Encode(&buf, opaqueImage(w, h), nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}

	return buf.Bytes()
}

func webpBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, 80)
	if err != nil {
		t.Fatalf("webp options: %v", err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, opaqueImage(w, h), options); err != nil {
		t.Fatalf("encode webp: %v", err)
	}

	return buf.Bytes()
}

func bmpBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, opaqueImage(w, h)); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}

	return buf.Bytes()
}

// colourKeyedPNG encodes an opaque truecolour PNG and splices a tRNS chunk
// after IHDR, marking pure black as transparent.
func colourKeyedPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	plain := pngBytes(t, opaqueImage(w, h))
	const afterIHDR = 8 + 4 + 4 + 13 + 4

	data := make([]byte, 6)
	chunk := binary.BigEndian.AppendUint32(nil, uint32(len(data)))
	chunk = append(chunk, "tRNS"...)
	chunk = append(chunk, data...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := append([]byte{}, plain[:afterIHDR]...)
	out = append(out, chunk...)

	return append(out, plain[afterIHDR:]...)
}
