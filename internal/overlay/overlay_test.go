package overlay

import (
	"image"
	"image/color"
	"testing"
	"time"

	"golang.org/x/image/font/basicfont"

	"framestamp/internal/logging"
)

func TestComputeDisplayedTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		elapsed  float64
		interval int
		want     time.Time
	}{
		{"at zero", 0, 60, start},
		{"just before boundary", 59, 60, start},
		{"at boundary", 60, 60, start.Add(60 * time.Second)},
		{"just after boundary", 60.5, 60, start.Add(60 * time.Second)},
		{"second interval", 120, 60, start.Add(120 * time.Second)},
		{"short interval", 4.9, 5, start},
		{"short interval boundary", 5, 5, start.Add(5 * time.Second)},
		{"non-positive interval treated as one second", 3.2, 0, start.Add(3 * time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDisplayedTime(tt.elapsed, start, tt.interval)
			if !got.Equal(tt.want) {
				t.Errorf(
					"ComputeDisplayedTime(%v, start, %d) = %v, want %v",
					tt.elapsed,
					tt.interval,
					got,
					tt.want,
				)
			}
		})
	}
}

func TestComputeDisplayedTimeMonotonic(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	prev := ComputeDisplayedTime(0, start, 7)

	for elapsed := 0.0; elapsed <= 300; elapsed += 0.25 {
		got := ComputeDisplayedTime(elapsed, start, 7)
		if got.Before(prev) {
			t.Fatalf("displayed time regressed at elapsed=%v: %v < %v", elapsed, got, prev)
		}
		prev = got
	}
}

// a 10-second 30fps video with a 5-second interval must change the label
// exactly once, at frame 150
func TestLabelChangesOnlyAtIntervalBoundaries(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	const fps = 30.0
	const frames = 300
	const interval = 5

	var transitions []int
	prev := ""
	for i := 0; i < frames; i++ {
		elapsed := float64(i) / fps
		label := formatLabel(ComputeDisplayedTime(elapsed, start, interval))
		if label != prev {
			transitions = append(transitions, i)
			prev = label
		}
	}

	if len(transitions) != 2 || transitions[0] != 0 || transitions[1] != 150 {
		t.Errorf("label transitions at %v, want [0 150]", transitions)
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{
			time.Date(2024, 1, 5, 9, 7, 0, 0, time.Local),
			"2024年01月05日 09:07",
		},
		{
			time.Date(2023, 12, 31, 23, 59, 58, 0, time.Local),
			"2023年12月31日 23:59",
		},
	}

	for _, tt := range tests {
		if got := formatLabel(tt.t); got != tt.want {
			t.Errorf("formatLabel(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestResolveFaceFallsBackToDefault(t *testing.T) {
	face := resolveFace([]string{"/nonexistent/font.ttf"}, 2.0, logging.NewNop())
	if face != basicfont.Face7x13 {
		t.Error("expected fallback to the built-in face when no font loads")
	}
}

func TestResolveFaceNoPaths(t *testing.T) {
	face := resolveFace(nil, 2.0, logging.NewNop())
	if face != basicfont.Face7x13 {
		t.Error("expected the built-in face when no paths are configured")
	}
}

func TestDrawTextWithBackground(t *testing.T) {
	background := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	r := &Renderer{
		cfg: Config{
			Position:   image.Pt(50, 50),
			TextColor:  textColor,
			Background: &background,
			Padding:    4,
		},
		start:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local),
		face:   basicfont.Face7x13,
		logger: logging.NewNop(),
	}

	dst := image.NewRGBA(image.Rect(0, 0, 400, 100))
	r.drawText(dst, "2024年01月01日 10:00")

	// inside the padded box, left of the text start
	if got := dst.RGBAAt(47, 52); got != background {
		t.Errorf("background pixel = %v, want %v", got, background)
	}

	// some text pixels must carry the text color
	found := false
	for y := 0; y < 100 && !found; y++ {
		for x := 0; x < 400; x++ {
			if dst.RGBAAt(x, y) == textColor {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no text pixels drawn")
	}
}

func TestDrawTextWithoutBackground(t *testing.T) {
	r := &Renderer{
		cfg: Config{
			Position:  image.Pt(20, 40),
			TextColor: color.RGBA{R: 255, G: 0, B: 0, A: 255},
		},
		face:   basicfont.Face7x13,
		logger: logging.NewNop(),
	}

	dst := image.NewRGBA(image.Rect(0, 0, 200, 60))
	r.drawText(dst, "10:00")

	// pixel far from the text stays untouched
	if got := dst.RGBAAt(5, 5); got != (color.RGBA{}) {
		t.Errorf("expected untouched pixel, got %v", got)
	}
}

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer(time.Now(), Config{}, nil)
	if r.cfg.FontScale != 2.0 {
		t.Errorf("FontScale = %v, want 2.0", r.cfg.FontScale)
	}
	if r.cfg.UpdateIntervalSeconds != 60 {
		t.Errorf("UpdateIntervalSeconds = %d, want 60", r.cfg.UpdateIntervalSeconds)
	}
	if r.face == nil {
		t.Error("expected a resolved font face")
	}
}
