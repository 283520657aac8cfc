package imageproc

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	_ "image/gif"  // register gif decoder
	_ "image/jpeg" // register jpeg decoder
	_ "image/png"  // register png decoder

	_ "golang.org/x/image/webp" // register webp decoder
)

// MaxDimension is the largest accepted width or height in pixels.
const MaxDimension = 10000

const (
	ReasonParseFailed       = "Failed to parse image"
	ReasonInvalidDimensions = "Invalid image dimensions"
	ReasonTooLarge          = "Image dimensions too large"
	reasonUnsupported       = "Unsupported format: "
)

type ValidationResult struct {
	Valid  bool
	Info   *DecodedImageInfo
	Reason string
}

// Validate reads only the image header; it never decodes pixel data.
func Validate(buf []byte) ValidationResult {
	info, err := Inspect(buf)
	if err != nil {
		return ValidationResult{Reason: ReasonParseFailed}
	}

	if !info.Format.Supported() {
		return ValidationResult{Reason: reasonUnsupported + string(info.Format)}
	}

	if info.Width <= 0 || info.Height <= 0 {
		return ValidationResult{Reason: ReasonInvalidDimensions}
	}

	if info.Width > MaxDimension || info.Height > MaxDimension {
		return ValidationResult{Reason: ReasonTooLarge}
	}

	return ValidationResult{Valid: true, Info: &info}
}

// Inspect decodes the header of buf with whichever registered decoder
// recognises it.
func Inspect(buf []byte) (DecodedImageInfo, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return DecodedImageInfo{}, err
	}

	return DecodedImageInfo{
		Format:   Format(name),
		Width:    cfg.Width,
		Height:   cfg.Height,
		HasAlpha: hasAlpha(cfg.ColorModel) || (name == string(FormatPNG) && hasTransparencyChunk(buf)),
	}, nil
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// hasTransparencyChunk walks the PNG chunks ahead of the pixel data looking
// for tRNS. DecodeConfig stops at IHDR for grey and truecolour images, so a
// colour-key transparency would otherwise go unnoticed.
func hasTransparencyChunk(buf []byte) bool {
	if !bytes.HasPrefix(buf, pngSignature) {
		return false
	}

	for off := len(pngSignature); off+8 <= len(buf); {
		length := int(binary.BigEndian.Uint32(buf[off : off+4]))

		switch string(buf[off+4 : off+8]) {
		case "tRNS":
			return true
		case "IDAT", "IEND":
			return false
		}

		if length < 0 || length > len(buf)-off-12 {
			return false
		}
		off += 12 + length
	}

	return false
}

// hasAlpha reports whether the colour model carries an alpha channel. The png
// decoder reports RGBA/RGBA64 for truecolour images without one.
func hasAlpha(model color.Model) bool {
	switch model {
	case color.NRGBAModel, color.NRGBA64Model, color.AlphaModel, color.Alpha16Model, color.NYCbCrAModel:
		return true
	}

	if palette, ok := model.(color.Palette); ok {
		for _, c := range palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
	}

	return false
}
