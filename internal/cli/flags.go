package cli

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"framestamp/internal/contentapi"
	"framestamp/internal/frame"
)

// registers the flags shared by commands that talk to the
// content-understanding service
func addRemoteFlags(cmd *cobra.Command) {
	cmd.Flags().
		String("endpoint", "", "Content-understanding endpoint (or set CONTENT_API_ENDPOINT)")
	cmd.Flags().
		String("api-version", "", "Service API version (or set CONTENT_API_VERSION)")
	cmd.Flags().
		String("api-key", "", "Subscription key (or set CONTENT_API_KEY)")
	cmd.Flags().
		String("operation-id", "", "Analyzer result operation ID for remote frame retrieval")
}

// builds the remote frame source from flags and environment. Returns a nil
// source when the remote tier is not configured; that is a supported
// degraded mode, not an error.
func remoteSource(cmd *cobra.Command) (frame.FrameSource, string, error) {
	endpoint, _ := cmd.Flags().GetString("endpoint")
	if endpoint == "" {
		endpoint = os.Getenv("CONTENT_API_ENDPOINT")
	}
	apiVersion, _ := cmd.Flags().GetString("api-version")
	if apiVersion == "" {
		apiVersion = os.Getenv("CONTENT_API_VERSION")
	}
	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = os.Getenv("CONTENT_API_KEY")
	}
	operationID, _ := cmd.Flags().GetString("operation-id")

	if endpoint == "" || operationID == "" {
		return nil, "", nil
	}

	client, err := contentapi.NewClient(contentapi.Config{
		Endpoint:        endpoint,
		APIVersion:      apiVersion,
		SubscriptionKey: apiKey,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create content API client: %w", err)
	}
	return client, operationID, nil
}

// "x,y" → point
func parsePoint(s string) (image.Point, error) {
	parts, err := splitInts(s, 2)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid point %q: expected x,y", s)
	}
	return image.Pt(parts[0], parts[1]), nil
}

// "x,y,w,h" → pixel rectangle
func parseRegion(s string) (image.Rectangle, error) {
	parts, err := splitInts(s, 4)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("invalid region %q: expected x,y,w,h", s)
	}
	x, y, w, h := parts[0], parts[1], parts[2], parts[3]
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q: width and height must be positive", s)
	}
	return image.Rect(x, y, x+w, y+h), nil
}

// "r,g,b" → opaque color
func parseColor(s string) (color.RGBA, error) {
	parts, err := splitInts(s, 3)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected r,g,b", s)
	}
	for _, v := range parts {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("invalid color %q: components must be 0-255", s)
		}
	}
	return color.RGBA{
		R: uint8(parts[0]),
		G: uint8(parts[1]),
		B: uint8(parts[2]),
		A: 255,
	}, nil
}

// comma-separated millisecond offsets
func parseKeyTimes(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var times []int64
	for _, part := range strings.Split(s, ",") {
		ms, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid key time %q", part)
		}
		if ms < 0 {
			return nil, fmt.Errorf("invalid key time %q: must be non-negative", part)
		}
		times = append(times, ms)
	}
	return times, nil
}

func parseStartTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start time %q: use \"2006-01-02 15:04[:05]\"", s)
}

func splitInts(s string, want int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != want {
		return nil, fmt.Errorf("expected %d components", want)
	}
	out := make([]int, want)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
