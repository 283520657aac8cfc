// Package imageproc validates, inspects, resizes and re-encodes raster images.
package imageproc

type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatGIF  Format = "gif"
)

// Supported reports whether uploads in this format are accepted.
func (f Format) Supported() bool {
	switch f {
	case FormatJPEG, FormatPNG, FormatWebP, FormatGIF:
		return true
	default:
		return false
	}
}

// ParseFormat maps a user supplied format name to an output format. Anything
// unrecognised, including gif, falls back to jpeg.
func ParseFormat(name string) Format {
	switch Format(name) {
	case FormatPNG:
		return FormatPNG
	case FormatWebP:
		return FormatWebP
	default:
		return FormatJPEG
	}
}

type DecodedImageInfo struct {
	Format   Format
	Width    int
	Height   int
	HasAlpha bool
}

type ProcessedImage struct {
	Buffer   []byte
	Format   Format
	Width    int
	Height   int
	ByteSize int64
}

// Options bound a single transcode. Zero MaxWidth or MaxHeight leaves that
// axis unbounded; zero Quality uses DefaultQuality.
type Options struct {
	Quality   int
	MaxWidth  int
	MaxHeight int
	Format    Format
}

type Size struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Label  string `yaml:"label"`
}

type Variant struct {
	Label string
	Image ProcessedImage
}

const DefaultQuality = 80

// DefaultSizes are produced, in this order, when a caller names no sizes.
func DefaultSizes() []Size {
	return []Size{
		{Width: 150, Height: 150, Label: "thumbnail"},
		{Width: 800, Height: 600, Label: "medium"},
		{Width: 1920, Height: 1080, Label: "large"},
	}
}
