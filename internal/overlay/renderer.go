package overlay

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"time"

	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"framestamp/internal/logging"
)

// invoked after every written frame with (framesWritten, totalFrames);
// totalFrames is 0 when the container does not report a frame count.
// Callbacks run on the rendering goroutine and must not block.
type ProgressFunc func(written, total int)

type RenderOptions struct {
	StartSeconds float64
	EndSeconds   float64 // 0 renders to end of stream
	Progress     ProgressFunc
}

// burns a periodically-incrementing date-time label into every frame of a
// video, preserving the source frame rate and dimensions
type Renderer struct {
	cfg    Config
	start  time.Time
	face   font.Face
	logger *logging.Logger
}

func NewRenderer(start time.Time, cfg Config, logger *logging.Logger) *Renderer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if cfg.FontScale <= 0 {
		cfg.FontScale = 2.0
	}
	if cfg.UpdateIntervalSeconds <= 0 {
		cfg.UpdateIntervalSeconds = 60
	}

	return &Renderer{
		cfg:    cfg,
		start:  start,
		face:   resolveFace(cfg.FontPaths, cfg.FontScale, logger),
		logger: logger,
	}
}

// rewrites the video (or the [StartSeconds, EndSeconds) sub-range) with the
// label composited onto each frame. The displayed clock starts at the
// renderer's start datetime for the first rendered frame regardless of where
// in the source the range begins. Partial output may exist on failure.
func (r *Renderer) Render(ctx context.Context, inputPath, outputPath string, opts RenderOptions) error {
	capture, err := gocv.VideoCaptureFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input video: %w", err)
	}
	defer capture.Close()

	if !capture.IsOpened() {
		return fmt.Errorf("input video is not opened: %s", inputPath)
	}

	fps := capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		return fmt.Errorf("input video reports invalid frame rate %v", fps)
	}
	width := int(capture.Get(gocv.VideoCaptureFrameWidth))
	height := int(capture.Get(gocv.VideoCaptureFrameHeight))
	totalFrames := int(capture.Get(gocv.VideoCaptureFrameCount))

	startFrame := 0
	if opts.StartSeconds > 0 {
		startFrame = int(opts.StartSeconds * fps)
		capture.Set(gocv.VideoCapturePosFrames, float64(startFrame))
	}

	endFrame := -1 // end of stream
	if opts.EndSeconds > 0 {
		endFrame = int(opts.EndSeconds * fps)
		if totalFrames > 0 && endFrame > totalFrames {
			endFrame = totalFrames
		}
	} else if totalFrames > 0 {
		endFrame = totalFrames
	}

	total := 0
	if endFrame > startFrame {
		total = endFrame - startFrame
	}

	writer, err := gocv.VideoWriterFile(outputPath, "mp4v", fps, width, height, true)
	if err != nil {
		return fmt.Errorf("failed to create output video: %w", err)
	}
	defer writer.Close()

	if !writer.IsOpened() {
		return fmt.Errorf("output video is not opened: %s", outputPath)
	}

	r.logger.Infow("rendering timestamp overlay",
		"input", inputPath,
		"output", outputPath,
		"fps", fps,
		"width", width,
		"height", height,
		"start_frame", startFrame,
		"end_frame", endFrame,
	)

	img := gocv.NewMat()
	defer img.Close()

	written := 0
	for frameIdx := startFrame; endFrame < 0 || frameIdx < endFrame; frameIdx++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !capture.Read(&img) || img.Empty() {
			break // end of stream
		}

		elapsed := float64(frameIdx-startFrame) / fps
		label := formatLabel(ComputeDisplayedTime(elapsed, r.start, r.cfg.UpdateIntervalSeconds))

		stamped, err := r.stampFrame(img, label)
		if err != nil {
			return fmt.Errorf("failed to stamp frame %d: %w", frameIdx, err)
		}

		err = writer.Write(stamped)
		stamped.Close()
		if err != nil {
			return fmt.Errorf("failed to write frame %d: %w", frameIdx, err)
		}

		written++
		if opts.Progress != nil {
			opts.Progress(written, total)
		}
	}

	r.logger.Infow("render complete",
		"frames_written", written,
		"output", outputPath,
	)

	return nil
}

// composites the label onto a single frame at atSeconds without writing a
// video, for previewing overlay settings
func (r *Renderer) PreviewAt(inputPath string, atSeconds float64) (image.Image, error) {
	capture, err := gocv.VideoCaptureFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input video: %w", err)
	}
	defer capture.Close()

	if !capture.IsOpened() {
		return nil, fmt.Errorf("input video is not opened: %s", inputPath)
	}

	fps := capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		return nil, fmt.Errorf("input video reports invalid frame rate %v", fps)
	}

	target := int(atSeconds * fps)
	if totalFrames := int(capture.Get(gocv.VideoCaptureFrameCount)); totalFrames > 0 && target >= totalFrames {
		target = totalFrames - 1
	}
	if target < 0 {
		target = 0
	}
	capture.Set(gocv.VideoCapturePosFrames, float64(target))

	img := gocv.NewMat()
	defer img.Close()

	if !capture.Read(&img) || img.Empty() {
		return nil, fmt.Errorf("no frame at %.2fs", atSeconds)
	}

	src, err := img.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}

	rgba := toRGBA(src)
	label := formatLabel(ComputeDisplayedTime(atSeconds, r.start, r.cfg.UpdateIntervalSeconds))
	r.drawText(rgba, label)
	return rgba, nil
}

// converts the frame to an image, draws the label, and converts back.
// OpenCV's built-in fonts cannot shape the CJK label, so drawing happens
// on the Go image side.
func (r *Renderer) stampFrame(src gocv.Mat, label string) (gocv.Mat, error) {
	img, err := src.ToImage()
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to convert frame: %w", err)
	}

	rgba := toRGBA(img)
	r.drawText(rgba, label)

	stamped, err := gocv.ImageToMatRGB(rgba)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to convert stamped frame: %w", err)
	}
	return stamped, nil
}

// draws the label at the configured baseline position with an optional
// padded background box sized to the text bounds
func (r *Renderer) drawText(dst *image.RGBA, label string) {
	bounds, advance := font.BoundString(r.face, label)
	textWidth := advance.Ceil()
	textHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x, y := r.cfg.Position.X, r.cfg.Position.Y

	if r.cfg.Background != nil {
		pad := r.cfg.Padding
		box := image.Rect(x-pad, y-textHeight-pad, x+textWidth+pad, y+pad)
		draw.Draw(dst, box.Intersect(dst.Bounds()),
			image.NewUniform(*r.cfg.Background), image.Point{}, draw.Src)
	}

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(r.cfg.TextColor),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(label)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}
