package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"
)

// drawing settings for the burned-in date-time label, fixed for the
// lifetime of one render call
type Config struct {
	Position              image.Point
	FontScale             float64
	TextColor             color.RGBA
	Background            *color.RGBA // nil disables the background box
	Padding               int
	UpdateIntervalSeconds int
	FontPaths             []string
}

func DefaultConfig() Config {
	return Config{
		Position:              image.Pt(50, 50),
		FontScale:             2.0,
		TextColor:             color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Padding:               10,
		UpdateIntervalSeconds: 60,
		FontPaths:             DefaultFontPaths(),
	}
}

// step function over elapsed video time: the label advances only at
// update-interval boundaries and never regresses
func ComputeDisplayedTime(elapsedSeconds float64, start time.Time, updateIntervalSeconds int) time.Time {
	if updateIntervalSeconds <= 0 {
		updateIntervalSeconds = 1
	}
	intervals := int64(math.Floor(elapsedSeconds / float64(updateIntervalSeconds)))
	return start.Add(time.Duration(intervals*int64(updateIntervalSeconds)) * time.Second)
}

func formatLabel(t time.Time) string {
	return fmt.Sprintf("%04d年%02d月%02d日 %02d:%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}
