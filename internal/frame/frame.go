package frame

import (
	"context"
	"fmt"
	"image"
)

// labeled time interval within a video, in milliseconds
type Segment struct {
	StartMS int64
	EndMS   int64
	Text    string
}

// remote frame-retrieval capability of the content-understanding service
type FrameSource interface {
	GetFrame(ctx context.Context, operationID string, timeMS int64) ([]byte, error)
}

// local video-decode capability: one JPEG-encoded frame at a millisecond offset
type FrameReader interface {
	ReadFrameAt(ctx context.Context, timeMS int64) ([]byte, error)
}

// OCR capability: recognized text fragments in detection order
type TextRecognizer interface {
	Recognize(img image.Image) ([]string, error)
}

// outcome of one acquisition tier
type Tier int

const (
	TierNotTried Tier = iota
	TierUnavailable
	TierFailed
	TierSuccess
)

func (t Tier) String() string {
	switch t {
	case TierNotTried:
		return "not-tried"
	case TierUnavailable:
		return "unavailable"
	case TierFailed:
		return "failed"
	case TierSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// result of a tiered frame fetch; Frame is nil when every tier missed
type Result struct {
	Frame  []byte
	Remote Tier
	Local  Tier
}

func (r Result) OK() bool {
	return len(r.Frame) > 0
}

// selects the first key time within [startMS, endMS] in iteration order,
// or the integer midpoint when none falls in range
func PickRepresentativeTime(startMS, endMS int64, keyTimes []int64) int64 {
	for _, t := range keyTimes {
		if t >= startMS && t <= endMS {
			return t
		}
	}
	return (startMS + endMS) / 2
}

// formats a millisecond offset as MM:SS.mmm; minutes are not capped at 59
func FormatMS(ms int64) string {
	s, rem := ms/1000, ms%1000
	return fmt.Sprintf("%02d:%02d.%03d", s/60, s%60, rem)
}
