package cli

import (
	"context"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"framestamp/internal/overlay"
	"framestamp/internal/video"
)

var overlayCmd = &cobra.Command{
	Use:   "overlay [video_file]",
	Short: "Burn an incrementing date-time label into a video",
	Long: `Rewrite a video with a date-time label composited onto every frame.

The label starts at --start-time and advances in steps of --interval seconds
of video time. Frame rate and dimensions are preserved; the video is
re-encoded. With --from/--to only that sub-range is rendered, and the label
clock restarts at --start-time for the first rendered frame.

Examples:
  framestamp overlay in.mp4 -o out.mp4 --start-time "2024-01-01 10:00:00"
  framestamp overlay in.mp4 --start-time "2024-01-01 10:00" --interval 5 \
      --position 50,50 --background 0,0,0 --from 30 --to 90
  framestamp overlay in.mp4 --start-time "2024-01-01 10:00" --preview-at 12.5`,
	Args: cobra.ExactArgs(1),
	RunE: runOverlay,
}

func init() {
	rootCmd.AddCommand(overlayCmd)

	overlayCmd.Flags().
		String("start-time", "", "Label start date-time, e.g. \"2024-01-01 10:00:00\" (required)")
	overlayCmd.Flags().String("position", "50,50", "Label position as x,y")
	overlayCmd.Flags().Float64("font-scale", 2.0, "Label font scale")
	overlayCmd.Flags().String("color", "255,255,255", "Label color as r,g,b")
	overlayCmd.Flags().
		String("background", "", "Background box color as r,g,b (empty disables the box)")
	overlayCmd.Flags().Int("padding", 10, "Background box padding in pixels")
	overlayCmd.Flags().
		Int("interval", 60, "Label update interval in seconds of video time")
	overlayCmd.Flags().Float64("from", 0, "Render from this source time in seconds")
	overlayCmd.Flags().
		Float64("to", 0, "Render up to this source time in seconds (0 = end of stream)")
	overlayCmd.Flags().
		Float64("preview-at", -1, "Write a single composited frame at this time instead of a video")
	overlayCmd.Flags().
		StringArray("font", nil, "Label font file to try first (repeatable)")
}

func runOverlay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	startStr, _ := cmd.Flags().GetString("start-time")
	if startStr == "" {
		return fmt.Errorf("--start-time is required")
	}
	startTime, err := parseStartTime(startStr)
	if err != nil {
		return err
	}

	cfg := overlay.DefaultConfig()

	positionStr, _ := cmd.Flags().GetString("position")
	if cfg.Position, err = parsePoint(positionStr); err != nil {
		return err
	}
	cfg.FontScale, _ = cmd.Flags().GetFloat64("font-scale")
	colorStr, _ := cmd.Flags().GetString("color")
	if cfg.TextColor, err = parseColor(colorStr); err != nil {
		return err
	}
	if backgroundStr, _ := cmd.Flags().GetString("background"); backgroundStr != "" {
		background, err := parseColor(backgroundStr)
		if err != nil {
			return err
		}
		cfg.Background = &background
	}
	cfg.Padding, _ = cmd.Flags().GetInt("padding")
	cfg.UpdateIntervalSeconds, _ = cmd.Flags().GetInt("interval")
	if fonts, _ := cmd.Flags().GetStringArray("font"); len(fonts) > 0 {
		cfg.FontPaths = append(fonts, cfg.FontPaths...)
	}

	renderer := overlay.NewRenderer(startTime, cfg, logger)

	previewAt, _ := cmd.Flags().GetFloat64("preview-at")
	if previewAt >= 0 {
		return writeOverlayPreview(cmd, renderer, inputPath, previewAt)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		ext := filepath.Ext(inputPath)
		outputPath = strings.TrimSuffix(inputPath, ext) + "_stamped.mp4"
	}

	if info, err := video.Probe(ctx, inputPath); err != nil {
		logger.Warnw("Input probe failed, continuing",
			"error", err,
		)
	} else {
		logger.Infow("Input video",
			"codec", info.Codec,
			"duration", info.Duration.String(),
			"fps", info.FrameRate,
			"size", fmt.Sprintf("%dx%d", info.Width, info.Height),
			"frames", info.TotalFrames,
		)
	}

	from, _ := cmd.Flags().GetFloat64("from")
	to, _ := cmd.Flags().GetFloat64("to")

	var bar *progressbar.ProgressBar
	progress := func(written, total int) {
		if bar == nil {
			size := int64(total)
			if size <= 0 {
				size = -1 // spinner when the frame count is unknown
			}
			bar = progressbar.Default(size, "rendering")
		}
		_ = bar.Set(written)
	}

	opts := overlay.RenderOptions{
		StartSeconds: from,
		EndSeconds:   to,
		Progress:     progress,
	}

	if err := renderer.Render(ctx, inputPath, outputPath, opts); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Overlay video written: %s\n", absOutput)

	return nil
}

func writeOverlayPreview(cmd *cobra.Command, renderer *overlay.Renderer, inputPath string, atSeconds float64) error {
	img, err := renderer.PreviewAt(inputPath, atSeconds)
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		ext := filepath.Ext(inputPath)
		outputPath = strings.TrimSuffix(inputPath, ext) + "_preview.jpg"
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, nil); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Overlay preview written: %s\n", absOutput)

	return nil
}
