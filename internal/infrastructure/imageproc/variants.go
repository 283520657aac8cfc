package imageproc

import (
	"context"

	"paintrack/internal/infrastructure/metrics"
	"paintrack/pkg/logger"
)

type transcoder interface {
	Transcode(ctx context.Context, buf []byte, opts Options) (ProcessedImage, error)
}

// VariantGenerator renders one source into several labelled sizes.
type VariantGenerator struct {
	transcoder transcoder
	quality    int
	metrics    *metrics.Metrics
}

func NewVariantGenerator(t transcoder, quality int, m *metrics.Metrics) *VariantGenerator {
	return &VariantGenerator{
		transcoder: t,
		quality:    quality,
		metrics:    m,
	}
}

// CreateVariants transcodes buf once per size, in order, always to jpeg. A
// size that fails is logged and skipped so the others are still produced;
// the result can therefore be shorter than sizes. Nil sizes means
// DefaultSizes.
func (g *VariantGenerator) CreateVariants(ctx context.Context, buf []byte, sizes []Size) []Variant {
	if len(sizes) == 0 {
		sizes = DefaultSizes()
	}

	variants := make([]Variant, 0, len(sizes))
	for _, size := range sizes {
		img, err := g.transcoder.Transcode(ctx, buf, Options{
			Quality:   g.quality,
			MaxWidth:  size.Width,
			MaxHeight: size.Height,
			Format:    FormatJPEG,
		})
		if err != nil {
			logger.Error("failed to create image variant",
				"label", size.Label, "width", size.Width, "height", size.Height, "err", err.Error())
			g.metrics.RecordVariantFailure(size.Label)

			continue
		}

		variants = append(variants, Variant{Label: size.Label, Image: img})
	}

	return variants
}
