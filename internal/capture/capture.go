package capture

import (
	"context"
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"framestamp/internal/logging"
)

// local video-decode fallback: seeks a file by presentation timestamp and
// returns single frames re-encoded as JPEG. Implements frame.FrameReader.
type Reader struct {
	path   string
	logger *logging.Logger
}

func NewReader(path string, logger *logging.Logger) *Reader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reader{
		path:   path,
		logger: logger,
	}
}

// decodes the frame at timeMS. The capture handle is scoped to this call and
// released on every exit path.
func (r *Reader) ReadFrameAt(ctx context.Context, timeMS int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(r.path); err != nil {
		return nil, fmt.Errorf("video file not readable: %w", err)
	}

	capture, err := gocv.VideoCaptureFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video: %w", err)
	}
	defer capture.Close()

	if !capture.IsOpened() {
		return nil, fmt.Errorf("video capture is not opened: %s", r.path)
	}

	capture.Set(gocv.VideoCapturePosMsec, float64(timeMS))

	img := gocv.NewMat()
	defer img.Close()

	if !capture.Read(&img) || img.Empty() {
		return nil, fmt.Errorf("no frame at %dms", timeMS)
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
}
