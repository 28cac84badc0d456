package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"framestamp/internal/capture"
	"framestamp/internal/frame"
	"framestamp/internal/ocr"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr [video_file]",
	Short: "Read an on-screen date-time label from a frame region",
	Long: `Recognize text inside a pixel region of one video frame and parse a
date-time label from it.

Supported label formats are "2025年1月30日 15:21[:45]" (ASCII or fullwidth
colons) and "2025-01-30 15:21[:45]" (dash or slash date separators).

Examples:
  framestamp ocr recording.mp4 --time-ms 12000 --region 20,20,400,60
  framestamp ocr --operation-id OP123 --endpoint https://svc.example.com \
      --time-ms 12000 --region 20,20,400,60 --lang chi_sim,eng`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOCR,
}

func init() {
	rootCmd.AddCommand(ocrCmd)

	ocrCmd.Flags().Int64("time-ms", 0, "Frame time in milliseconds")
	ocrCmd.Flags().String("region", "", "Pixel region to read, as x,y,w,h")
	ocrCmd.Flags().
		String("lang", "", "Comma-separated OCR languages (default chi_sim,eng)")
	addRemoteFlags(ocrCmd)
}

func runOCR(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	timeMS, _ := cmd.Flags().GetInt64("time-ms")
	if timeMS < 0 {
		return fmt.Errorf("invalid time-ms %d", timeMS)
	}

	regionStr, _ := cmd.Flags().GetString("region")
	if regionStr == "" {
		return fmt.Errorf("--region is required")
	}
	region, err := parseRegion(regionStr)
	if err != nil {
		return err
	}

	var languages []string
	if langStr, _ := cmd.Flags().GetString("lang"); langStr != "" {
		languages = strings.Split(langStr, ",")
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

	engine, err := ocr.NewEngine(languages, logger)
	if err != nil {
		return fmt.Errorf("failed to create OCR engine: %w", err)
	}
	defer engine.Close()

	accessor := frame.NewAccessor(frame.AccessorOptions{
		OperationID: operationID,
		Source:      source,
		Reader:      reader,
		Recognizer:  engine,
		Logger:      logger,
	})

	logger.Infow("Recognizing text",
		"frame_time", frame.FormatMS(timeMS),
		"region", region.String(),
	)

	fragments := accessor.ExtractText(ctx, timeMS, region)
	if len(fragments) == 0 {
		fmt.Println("No text recognized.")
		return nil
	}

	for _, fragment := range fragments {
		fmt.Println(fragment)
	}

	if ts, ok := frame.ParseTimestamp(strings.Join(fragments, " ")); ok {
		fmt.Printf("Parsed timestamp: %s\n", ts.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("No date-time label found in recognized text.")
	}

	return nil
}
