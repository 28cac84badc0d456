package frame

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"framestamp/internal/logging"
)

// resolves representative frames for analyzed video segments.
//
// Acquisition is tiered: the remote content-understanding service is asked
// first, then the local decoder. A missing capability is a supported degraded
// mode, not an error, so both Source and Reader may be nil.
type Accessor struct {
	keyTimes    []int64
	operationID string
	source      FrameSource
	reader      FrameReader
	recognizer  TextRecognizer
	logger      *logging.Logger
}

type AccessorOptions struct {
	KeyTimes    []int64
	OperationID string
	Source      FrameSource
	Reader      FrameReader
	Recognizer  TextRecognizer
	Logger      *logging.Logger
}

func NewAccessor(opts AccessorOptions) *Accessor {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Accessor{
		keyTimes:    opts.KeyTimes,
		operationID: opts.OperationID,
		source:      opts.Source,
		reader:      opts.Reader,
		recognizer:  opts.Recognizer,
		logger:      logger,
	}
}

// fetches one JPEG frame at timeMS, trying the remote service before the
// local decoder; tier failures are recorded, never propagated
func (a *Accessor) Fetch(ctx context.Context, timeMS int64) Result {
	var res Result

	if a.source == nil {
		res.Remote = TierUnavailable
	} else {
		data, err := a.source.GetFrame(ctx, a.operationID, timeMS)
		if err == nil && len(data) > 0 {
			res.Remote = TierSuccess
			res.Frame = data
			return res
		}
		res.Remote = TierFailed
		a.logger.Debugw("remote frame fetch missed",
			"time_ms", timeMS,
			"error", err,
		)
	}

	if a.reader == nil {
		res.Local = TierUnavailable
		return res
	}

	data, err := a.reader.ReadFrameAt(ctx, timeMS)
	if err == nil && len(data) > 0 {
		res.Local = TierSuccess
		res.Frame = data
		return res
	}
	res.Local = TierFailed
	a.logger.Debugw("local frame decode missed",
		"time_ms", timeMS,
		"error", err,
	)

	return res
}

// fetches a representative frame for the segment using the accessor's key times
func (a *Accessor) SegmentPreview(ctx context.Context, seg Segment) Result {
	return a.Fetch(ctx, PickRepresentativeTime(seg.StartMS, seg.EndMS, a.keyTimes))
}

// recognizes text inside a pixel region of the frame at timeMS; an absent
// frame, a missing OCR capability, or an engine fault all yield nil
func (a *Accessor) ExtractText(ctx context.Context, timeMS int64, region image.Rectangle) []string {
	if a.recognizer == nil {
		return nil
	}

	res := a.Fetch(ctx, timeMS)
	if !res.OK() {
		return nil
	}

	img, err := jpeg.Decode(bytes.NewReader(res.Frame))
	if err != nil {
		a.logger.Debugw("frame is not a decodable JPEG",
			"time_ms", timeMS,
			"error", err,
		)
		return nil
	}

	fragments, err := a.recognizer.Recognize(imaging.Crop(img, region))
	if err != nil {
		a.logger.Debugw("text recognition failed",
			"time_ms", timeMS,
			"error", err,
		)
		return nil
	}

	return fragments
}

// reads an on-screen date-time label from a frame region; returns false when
// no frame, no text, or no grammar match is available
func (a *Accessor) ExtractTimestamp(ctx context.Context, timeMS int64, region image.Rectangle) (time.Time, bool) {
	fragments := a.ExtractText(ctx, timeMS, region)
	if len(fragments) == 0 {
		return time.Time{}, false
	}
	return ParseTimestamp(strings.Join(fragments, " "))
}
