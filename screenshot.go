package spine

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the target at the end of the next
// Draw. The PNG goes to the renderer's ScreenshotDir, named after the label,
// the time and the number of the frame that was drawn.
func (r *Renderer) Screenshot(label string) {
	r.screenshotQueue = append(r.screenshotQueue, label)
}

// flushScreenshots writes one PNG per queued label and reports the frame's
// stats next to each file. Called at the end of Draw.
func (r *Renderer) flushScreenshots(target *ebiten.Image, frame *Frame) {
	if len(r.screenshotQueue) == 0 {
		return
	}
	defer func() { r.screenshotQueue = r.screenshotQueue[:0] }()

	if err := os.MkdirAll(r.screenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[spine] screenshot: mkdir %s: %v\n", r.screenshotDir, err)
		return
	}

	bounds := target.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	target.ReadPixels(pixels)
	img := unpremultiply(pixels, w, h)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range r.screenshotQueue {
		path := filepath.Join(r.screenshotDir, screenshotName(stamp, label, frame))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[spine] screenshot: %v\n", err)
			continue
		}
		_, _ = fmt.Fprintf(os.Stderr, "[spine] screenshot %s | %s\n", path, screenshotSummary(frame))
	}
}

// screenshotName returns the file name of a capture of frame.
func screenshotName(stamp, label string, frame *Frame) string {
	var n uint64
	if frame != nil {
		n = frame.Number
	}
	return fmt.Sprintf("%s_%s_f%06d.png", stamp, sanitizeLabel(label), n)
}

// screenshotSummary describes the drawn frame in one line.
func screenshotSummary(frame *Frame) string {
	if frame == nil {
		return "no frame"
	}
	s := frame.Stats
	return fmt.Sprintf("frame %d | slots: %d drawn / %d total | vertices: %d | batches: %d",
		frame.Number, s.DrawnSlots, s.Slots, s.Vertices, s.Batches)
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
