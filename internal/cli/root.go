package cli

import (
	"github.com/spf13/cobra"

	"framestamp/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "framestamp",
	Short: "Frame previews and timestamp overlays for analyzed videos",
	Long: `Framestamp works with video analysis results from a content-understanding
service.

It pulls representative preview frames for analyzed segments (with a local
decode fallback), reads burned-in date-time labels from a frame region via
OCR, and renders an incrementing date-time label onto a video.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
