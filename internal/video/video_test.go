package video

import (
	"testing"
	"time"
)

const probeFixture = `{
	"streams": [
		{
			"index": 0,
			"codec_name": "aac",
			"codec_type": "audio"
		},
		{
			"index": 1,
			"codec_name": "h264",
			"codec_type": "video",
			"width": 1920,
			"height": 1080,
			"avg_frame_rate": "30000/1001",
			"nb_frames": "300"
		}
	],
	"format": {
		"duration": "10.010000"
	}
}`

const probeFixtureNoFrameCount = `{
	"streams": [
		{
			"codec_name": "vp9",
			"codec_type": "video",
			"width": 1280,
			"height": 720,
			"avg_frame_rate": "25/1"
		}
	],
	"format": {
		"duration": "4.000000"
	}
}`

func TestParseProbeOutput(t *testing.T) {
	info, err := parseProbeOutput(probeFixture)
	if err != nil {
		t.Fatalf("parseProbeOutput failed: %v", err)
	}

	if info.Codec != "h264" {
		t.Errorf("Codec = %q, want h264", info.Codec)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", info.Width, info.Height)
	}
	if info.TotalFrames != 300 {
		t.Errorf("TotalFrames = %d, want 300", info.TotalFrames)
	}
	if want := 30000.0 / 1001.0; info.FrameRate != want {
		t.Errorf("FrameRate = %v, want %v", info.FrameRate, want)
	}
	if want := 10010 * time.Millisecond; info.Duration != want {
		t.Errorf("Duration = %v, want %v", info.Duration, want)
	}
}

func TestParseProbeOutputDerivesFrameCount(t *testing.T) {
	info, err := parseProbeOutput(probeFixtureNoFrameCount)
	if err != nil {
		t.Fatalf("parseProbeOutput failed: %v", err)
	}
	if info.TotalFrames != 100 {
		t.Errorf("TotalFrames = %d, want 100 (4s at 25fps)", info.TotalFrames)
	}
}

func TestParseProbeOutputNoVideoStream(t *testing.T) {
	fixture := `{"streams":[{"codec_type":"audio"}],"format":{"duration":"1.0"}}`
	if _, err := parseProbeOutput(fixture); err == nil {
		t.Error("expected an error when no video stream is present")
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"25/1", 25},
		{"30000/1001", 30000.0 / 1001.0},
		{"30", 30},
		{"0/0", 0},
		{"", 0},
		{"N/A", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseFrameRate(tt.input); got != tt.want {
				t.Errorf("parseFrameRate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
