package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"inkview/internal/config"
	"inkview/pkg/inkview"
)

// Options defines parameters for a framebuffer dump.
type Options struct {
	// OutputPath is where the PNG will be written, e.g.
	// "/mnt/ext1/ivagenda/screen.png".
	OutputPath string

	// Region limits the dump to part of the screen. The zero rectangle
	// means the whole screen.
	Region image.Rectangle
}

// WritePNG encodes img and writes it atomically to path.
func WritePNG(path string, img image.Image) error {
	if path == "" {
		return fmt.Errorf("capture: OutputPath is required")
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return fmt.Errorf("capture: encode: %w", err)
	}
	if err := config.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("capture: failed to write PNG: %w", err)
	}
	return nil
}

// DumpScreen snapshots the inkview framebuffer and writes it as PNG.
// Like every drawing call it must run on the event loop goroutine.
func DumpScreen(opts Options) error {
	img, err := inkview.Canvas()
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	var out image.Image = img
	if !opts.Region.Empty() {
		r := opts.Region.Intersect(img.Bounds())
		if r.Empty() {
			return fmt.Errorf("capture: region %v outside screen %v", opts.Region, img.Bounds())
		}
		out = img.SubImage(r)
	}
	return WritePNG(opts.OutputPath, out)
}
