package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"framestamp/internal/video"
)

var probeCmd = &cobra.Command{
	Use:   "probe [video_file]",
	Short: "Print video file information",
	Args:  cobra.ExactArgs(1),
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	info, err := video.Probe(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}

	fmt.Printf("Path:       %s\n", info.Path)
	fmt.Printf("Codec:      %s\n", info.Codec)
	fmt.Printf("Duration:   %s\n", info.Duration)
	fmt.Printf("Dimensions: %dx%d\n", info.Width, info.Height)
	fmt.Printf("Frame rate: %.3f fps\n", info.FrameRate)
	fmt.Printf("Frames:     %d\n", info.TotalFrames)

	return nil
}
