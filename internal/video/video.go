package video

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// video file information
type Info struct {
	Path        string
	Duration    time.Duration
	Width       int
	Height      int
	FrameRate   float64
	Codec       string
	TotalFrames int
}

// retrieves video file information via ffprobe
func Probe(ctx context.Context, videoPath string) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	data, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	info, err := parseProbeOutput(data)
	if err != nil {
		return nil, err
	}
	info.Path = videoPath
	return info, nil
}

func parseProbeOutput(data string) (*Info, error) {
	stream := gjson.Get(data, `streams.#(codec_type=="video")`)
	if !stream.Exists() {
		return nil, fmt.Errorf("no video stream found")
	}

	info := &Info{
		Width:     int(stream.Get("width").Int()),
		Height:    int(stream.Get("height").Int()),
		Codec:     stream.Get("codec_name").String(),
		FrameRate: parseFrameRate(stream.Get("avg_frame_rate").String()),
	}

	if d := gjson.Get(data, "format.duration"); d.Exists() {
		info.Duration = time.Duration(d.Float() * float64(time.Second))
	}

	// nb_frames is container-dependent; derive it when missing
	info.TotalFrames = int(stream.Get("nb_frames").Int())
	if info.TotalFrames == 0 && info.FrameRate > 0 && info.Duration > 0 {
		info.TotalFrames = int(info.Duration.Seconds() * info.FrameRate)
	}

	return info, nil
}

// parses ffprobe rate fractions such as "30000/1001" or "25/1"
func parseFrameRate(s string) float64 {
	parts := strings.SplitN(s, "/", 2)
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	if len(parts) == 1 {
		return num
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0
	}
	return num / den
}
