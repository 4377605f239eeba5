package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// SaveMJPEG writes frames as an MJPEG AVI at fps frames per second. JPEG has
// no alpha channel, so frames should be rendered with an opaque palette.
func SaveMJPEG(path string, frames []*image.RGBA, fps int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	if fps <= 0 {
		fps = 10
	}
	b := frames[0].Bounds()
	if err := ensureDir(path); err != nil {
		return err
	}
	aw, err := mjpeg.New(path, int32(b.Dx()), int32(b.Dy()), int32(fps))
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	var buf bytes.Buffer
	for i, frame := range frames {
		buf.Reset()
		if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: 100}); err != nil {
			aw.Close()
			return fmt.Errorf("encode frame %d: %w", i, err)
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			aw.Close()
			return fmt.Errorf("add frame %d: %w", i, err)
		}
	}
	return aw.Close()
}
