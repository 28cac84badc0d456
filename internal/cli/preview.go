package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"framestamp/internal/capture"
	"framestamp/internal/frame"
)

var previewCmd = &cobra.Command{
	Use:   "preview [video_file]",
	Short: "Fetch a representative preview frame for a segment",
	Long: `Fetch one representative frame for a segment of an analyzed video.

The frame time is the first key-frame timestamp falling inside the segment,
or the segment midpoint when no key frame is in range. The frame is fetched
from the content-understanding service first; when a local video file is
given it serves as a decode fallback.

Examples:
  framestamp preview --start-ms 0 --end-ms 5000 --key-times 1200,3400 \
      --operation-id OP123 --endpoint https://svc.example.com
  framestamp preview recording.mp4 --start-ms 60000 --end-ms 90000 -o shot.jpg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().Int64("start-ms", 0, "Segment start in milliseconds")
	previewCmd.Flags().Int64("end-ms", 0, "Segment end in milliseconds")
	previewCmd.Flags().
		String("key-times", "", "Comma-separated key-frame timestamps in milliseconds")
	addRemoteFlags(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	startMS, _ := cmd.Flags().GetInt64("start-ms")
	endMS, _ := cmd.Flags().GetInt64("end-ms")
	if startMS < 0 || endMS < startMS {
		return fmt.Errorf("invalid segment: start-ms %d, end-ms %d", startMS, endMS)
	}

	keyTimesStr, _ := cmd.Flags().GetString("key-times")
	keyTimes, err := parseKeyTimes(keyTimesStr)
	if err != nil {
		return err
	}

	source, operationID, err := remoteSource(cmd)
	if err != nil {
		return err
	}

	var reader frame.FrameReader
	if len(args) == 1 {
		videoPath := args[0]
		if _, err := os.Stat(videoPath); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", videoPath)
		}
		reader = capture.NewReader(videoPath, logger)
	}

	if source == nil && reader == nil {
		return fmt.Errorf("no frame source: provide --endpoint and --operation-id, or a local video file")
	}

	accessor := frame.NewAccessor(frame.AccessorOptions{
		KeyTimes:    keyTimes,
		OperationID: operationID,
		Source:      source,
		Reader:      reader,
		Logger:      logger,
	})

	timeMS := frame.PickRepresentativeTime(startMS, endMS, keyTimes)

	logger.Infow("Fetching representative frame",
		"segment_start", frame.FormatMS(startMS),
		"segment_end", frame.FormatMS(endMS),
		"frame_time", frame.FormatMS(timeMS),
	)

	res := accessor.Fetch(ctx, timeMS)

	logger.Infow("Frame acquisition finished",
		"remote", res.Remote.String(),
		"local", res.Local.String(),
	)

	if !res.OK() {
		return fmt.Errorf("no representative frame available for [%s, %s]",
			frame.FormatMS(startMS), frame.FormatMS(endMS))
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = fmt.Sprintf("frame_%d.jpg", timeMS)
	}

	if err := os.WriteFile(outputPath, res.Frame, 0644); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Preview frame written: %s (t=%s)\n", absOutput, frame.FormatMS(timeMS))

	return nil
}
