package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
	"github.com/HugoSmits86/nativewebp"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
	FormatSVG  Format = "svg"
)

// ParseFormat accepts the format names and the "jpg" alias.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatJPEG, FormatWebP, FormatSVG:
		return f, nil
	case "jpg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("%w: %q", errorz.ErrUnsupportedFormat, s)
	}
}

// Extension is the file extension saved files get.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

func (f Format) MIME() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

const (
	jpegQuality        = 95
	webpJPEGQuality    = 90
	DefaultSettleDelay = 100 * time.Millisecond
	DefaultNarrowWidth = 768
	DefaultExportSize  = 1024
	narrowPixelRatio   = 1
	defaultPixelRatio  = 2
)

// Blob is an encoded file.
type Blob struct {
	Data []byte
	MIME string
	Ext  string
}

// Visual is the composed on-screen visual an export captures.
type Visual interface {
	// Raster draws the visual for a code of size px at the given pixel ratio.
	Raster(ctx context.Context, size int, scale float64) (image.Image, error)
}

// VectorVisual is a visual with a native vector form.
type VectorVisual interface {
	Visual
	Vector(ctx context.Context, size int) ([]byte, error)
}

// Saver stores an exported file under a name.
type Saver interface {
	Save(ctx context.Context, fileName string, blob Blob) error
}

type ExportRequest struct {
	Format   Format
	Size     int
	FileName string
	// ViewportWidth of the requesting client, 0 when unknown.
	ViewportWidth int
}

// ExportError reports a failed export. It is never fatal; the export can be retried.
type ExportError struct {
	Format   Format
	FileName string
	Err      error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s as %s: %v", e.FileName, e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

type ExportOptions struct {
	SettleDelay   time.Duration
	NarrowWidth   int
	DefaultSize   int
	DisableSettle bool
}

// ExportService turns a visual into files. One instance belongs to one card:
// while an export is pending every further request is rejected with
// errorz.ErrExportInProgress.
type ExportService struct {
	saver    Saver
	logger   *types.Logger
	opts     ExportOptions
	inFlight atomic.Bool
}

func NewExportService(saver Saver, logger *types.Logger, opts ExportOptions) *ExportService {
	if opts.SettleDelay <= 0 && !opts.DisableSettle {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.NarrowWidth <= 0 {
		opts.NarrowWidth = DefaultNarrowWidth
	}
	if opts.DefaultSize <= 0 {
		opts.DefaultSize = DefaultExportSize
	}
	return &ExportService{
		saver:  saver,
		logger: logger,
		opts:   opts,
	}
}

// PixelRatio is 1 on narrow viewports and 2 otherwise.
func (s *ExportService) PixelRatio(viewportWidth int) float64 {
	if viewportWidth > 0 && viewportWidth < s.opts.NarrowWidth {
		return narrowPixelRatio
	}
	return defaultPixelRatio
}

// Pending reports whether an export is in flight.
func (s *ExportService) Pending() bool {
	return s.inFlight.Load()
}

// FileName returns base with the extension of f.
func FileName(base string, f Format) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "qr-code"
	}
	return base + "." + f.Extension()
}

// Export encodes the visual and hands it to the saver.
func (s *ExportService) Export(ctx context.Context, visual Visual, req ExportRequest) error {
	return s.run(ctx, visual, req, func(blob Blob) error {
		return s.saver.Save(ctx, FileName(req.FileName, req.Format), blob)
	})
}

// GetBlob encodes the visual and returns it.
func (s *ExportService) GetBlob(ctx context.Context, visual Visual, req ExportRequest) (Blob, error) {
	var out Blob
	err := s.run(ctx, visual, req, func(blob Blob) error {
		out = blob
		return nil
	})
	return out, err
}

func (s *ExportService) run(ctx context.Context, visual Visual, req ExportRequest, deliver func(Blob) error) (err error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debugf("Export of %q skipped: another export is pending", req.FileName)
		return errorz.ErrExportInProgress
	}
	defer s.inFlight.Store(false)

	fail := func(err error) error {
		s.logger.Errorf("Failed to export %q as %s: %v", req.FileName, req.Format, err)
		return &ExportError{Format: req.Format, FileName: req.FileName, Err: err}
	}
	defer func() {
		if r := recover(); r != nil {
			err = fail(fmt.Errorf("panic: %v", r))
		}
	}()

	if s.opts.SettleDelay > 0 {
		timer := time.NewTimer(s.opts.SettleDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fail(ctx.Err())
		}
	}

	blob, errEncode := s.encode(ctx, visual, req)
	if errEncode != nil {
		return fail(errEncode)
	}
	if err = deliver(blob); err != nil {
		return fail(err)
	}

	s.logger.Infof("Exported %q as %s (%d bytes)", req.FileName, req.Format, len(blob.Data))
	return nil
}

func (s *ExportService) encode(ctx context.Context, visual Visual, req ExportRequest) (Blob, error) {
	size := req.Size
	if size <= 0 {
		size = s.opts.DefaultSize
	}
	blob := Blob{MIME: req.Format.MIME(), Ext: req.Format.Extension()}

	if req.Format == FormatSVG {
		vector, ok := visual.(VectorVisual)
		if !ok {
			return Blob{}, errorz.ErrVectorUnavailable
		}
		data, err := vector.Vector(ctx, size)
		if err != nil {
			return Blob{}, err
		}
		blob.Data = data
		return blob, nil
	}

	switch req.Format {
	case FormatPNG, FormatJPEG, FormatWebP:
	default:
		return Blob{}, fmt.Errorf("%w: %q", errorz.ErrUnsupportedFormat, req.Format)
	}

	img, err := visual.Raster(ctx, size, s.PixelRatio(req.ViewportWidth))
	if err != nil {
		return Blob{}, fmt.Errorf("capture: %w", err)
	}

	var buf bytes.Buffer
	switch req.Format {
	case FormatPNG:
		err = png.Encode(&buf, img)
	case FormatJPEG:
		err = jpeg.Encode(&buf, onWhite(img), &jpeg.Options{Quality: jpegQuality})
	case FormatWebP:
		err = encodeWebP(&buf, img)
	}
	if err != nil {
		return Blob{}, fmt.Errorf("encode %s: %w", req.Format, err)
	}
	blob.Data = buf.Bytes()
	return blob, nil
}

// encodeWebP goes through a JPEG bitmap first, the same way captures of
// composed cards do, then re-encodes the decoded bitmap as WebP.
func encodeWebP(buf *bytes.Buffer, img image.Image) error {
	var intermediate bytes.Buffer
	if err := jpeg.Encode(&intermediate, onWhite(img), &jpeg.Options{Quality: webpJPEGQuality}); err != nil {
		return err
	}
	decoded, err := jpeg.Decode(&intermediate)
	if err != nil {
		return err
	}
	return nativewebp.Encode(buf, decoded, nil)
}

// onWhite composites img over an opaque white background.
func onWhite(img image.Image) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}
