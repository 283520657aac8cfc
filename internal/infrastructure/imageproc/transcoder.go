package imageproc

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"golang.org/x/sync/semaphore"

	"paintrack/internal/domain/apperror"
	"paintrack/internal/infrastructure/metrics"
	"paintrack/pkg/logger"
)

const msgProcessingFailed = "Failed to process image"

// Transcoder decodes, fits and re-encodes images. Concurrent calls beyond
// the configured limit wait for a slot.
type Transcoder struct {
	slots   *semaphore.Weighted
	metrics *metrics.Metrics
}

type TranscoderOption func(*Transcoder)

func WithMetrics(m *metrics.Metrics) TranscoderOption {
	return func(t *Transcoder) { t.metrics = m }
}

// NewTranscoder allows maxConcurrent transcodes at once; a value below one
// uses the number of CPUs.
func NewTranscoder(maxConcurrent int64, opts ...TranscoderOption) *Transcoder {
	if maxConcurrent < 1 {
		maxConcurrent = int64(runtime.NumCPU())
	}

	t := &Transcoder{slots: semaphore.NewWeighted(maxConcurrent)}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (t *Transcoder) Transcode(ctx context.Context, buf []byte, opts Options) (result ProcessedImage, err error) {
	if err := t.slots.Acquire(ctx, 1); err != nil {
		return ProcessedImage{}, apperror.Processing(msgProcessingFailed, err)
	}
	defer t.slots.Release(1)

	opts = normalize(opts)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("image codec panicked",
				"format", string(opts.Format), "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			result, err = ProcessedImage{}, apperror.Processing(msgProcessingFailed, fmt.Errorf("panic: %v", r))
		}
		t.metrics.ObserveTranscode(string(opts.Format), time.Since(start), err)
	}()

	src, err := imaging.Decode(bytes.NewReader(buf), imaging.AutoOrientation(true))
	if err != nil {
		return ProcessedImage{}, processingError("decode", opts, err)
	}

	out, err := encode(fit(src, opts.MaxWidth, opts.MaxHeight), opts)
	if err != nil {
		return ProcessedImage{}, processingError("encode", opts, err)
	}

	// report what the codec produced, not what was asked for
	info, err := Inspect(out)
	if err != nil {
		return ProcessedImage{}, processingError("inspect", opts, err)
	}

	return ProcessedImage{
		Buffer:   out,
		Format:   info.Format,
		Width:    info.Width,
		Height:   info.Height,
		ByteSize: int64(len(out)),
	}, nil
}

func normalize(opts Options) Options {
	if opts.Quality <= 0 {
		opts.Quality = DefaultQuality
	}
	if opts.Quality > 100 {
		opts.Quality = 100
	}

	switch opts.Format {
	case FormatJPEG, FormatPNG, FormatWebP:
	default:
		opts.Format = FormatJPEG
	}

	return opts
}

// fit shrinks src to fit inside maxW x maxH keeping its aspect ratio. It never
// enlarges, and returns src untouched when it already fits.
func fit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	if maxW <= 0 {
		maxW = b.Dx()
	}
	if maxH <= 0 {
		maxH = b.Dy()
	}

	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}

	return imaging.Fit(src, maxW, maxH, imaging.Lanczos)
}

func encode(img image.Image, opts Options) ([]byte, error) {
	var out bytes.Buffer

	switch opts.Format {
	case FormatPNG:
		if err := imaging.Encode(&out, img, imaging.PNG,
			imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
			return nil, err
		}

	case FormatWebP:
		options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(opts.Quality))
		if err != nil {
			return nil, err
		}
		if err := webp.Encode(&out, img, options); err != nil {
			return nil, err
		}

	default:
		if err := imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(opts.Quality)); err != nil {
			return nil, err
		}
	}

	return out.Bytes(), nil
}

func processingError(stage string, opts Options, err error) error {
	logger.Error("image processing failed",
		"stage", stage,
		"format", string(opts.Format),
		"error_type", fmt.Sprintf("%T", err),
		"err", fmt.Sprintf("%+v", err))

	return apperror.Processing(msgProcessingFailed, err)
}
