package loc

/*------------------------------------------------------------------
 *
 * Purpose:	Consume one likelihood-field frame and its peak pixel.
 *		The SDL/OpenGL live view in original_source/view.c is out
 *		of scope here (spec.md's rendering Non-goal); Renderer is
 *		the pluggable seam left in its place.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Renderer consumes one frame of the likelihood field, given its dimensions
// and the already-located peak pixel and value.
type Renderer interface {
	Frame(field []Real, xres, yres int, peakX, peakY int, peakVal Real) error
}

// LogRenderer logs the peak pixel and value of every frame at Info level.
// This is the zero-configuration default Renderer.
type LogRenderer struct{}

func (LogRenderer) Frame(field []Real, xres, yres int, peakX, peakY int, peakVal Real) error {
	Logger.Info("frame", "peakX", peakX, "peakY", peakY, "peakVal", peakVal)
	return nil
}

// SnapshotRenderer writes each frame as a grayscale PNG, named from a
// strftime pattern so a sequence of frames sorts in capture order.
type SnapshotRenderer struct {
	pattern *strftime.Strftime
}

// NewSnapshotRenderer builds a SnapshotRenderer writing files named by
// layout, a strftime pattern (e.g. "snap-%Y%m%d-%H%M%S.png").
func NewSnapshotRenderer(layout string) (*SnapshotRenderer, error) {
	p, err := strftime.New(layout)
	if err != nil {
		return nil, newError(BadInput, "NewSnapshotRenderer", fmt.Errorf("%s: %w", layout, err))
	}
	return &SnapshotRenderer{pattern: p}, nil
}

func (r *SnapshotRenderer) Frame(field []Real, xres, yres int, peakX, peakY int, peakVal Real) error {
	img := image.NewGray(image.Rect(0, 0, xres, yres))

	var max Real
	for _, v := range field {
		if v > max {
			max = v
		}
	}
	max = IfThenElse(max == 0, Real(1), max)

	for y := 0; y < yres; y++ {
		for x := 0; x < xres; x++ {
			v := field[y*xres+x] / max
			img.SetGray(x, y, color.Gray{Y: uint8(Clamp(v*255.0, 0, 255))})
		}
	}

	img.SetGray(peakX, peakY, color.Gray{Y: 255})

	name := r.pattern.FormatString(time.Now())

	f, err := os.Create(name)
	if err != nil {
		return newError(ShortWrite, "SnapshotRenderer.Frame", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return newError(ShortWrite, "SnapshotRenderer.Frame", err)
	}

	Logger.Info("wrote snapshot", "file", name, "peakX", peakX, "peakY", peakY, "peakVal", peakVal)

	return nil
}
