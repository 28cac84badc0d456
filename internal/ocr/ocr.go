package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"framestamp/internal/logging"
)

// tesseract-backed text recognizer. Implements frame.TextRecognizer.
type Engine struct {
	client *gosseract.Client
	logger *logging.Logger
}

// languages used when none are configured; labels in the wild mix
// CJK dates with ASCII clock digits
var defaultLanguages = []string{"chi_sim", "eng"}

func NewEngine(languages []string, logger *logging.Logger) (*Engine, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if len(languages) == 0 {
		languages = defaultLanguages
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(languages...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	return &Engine{
		client: client,
		logger: logger,
	}, nil
}

// recognizes text in the image, one fragment per detected line in detection
// order. Falls back to splitting the full-page text when line enumeration
// is not supported by the installed engine.
func (e *Engine) Recognize(img image.Image) ([]string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode region: %w", err)
	}

	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set OCR image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err == nil {
		fragments := make([]string, 0, len(boxes))
		for _, box := range boxes {
			text := strings.TrimSpace(box.Word)
			if text != "" {
				fragments = append(fragments, text)
			}
		}
		if len(fragments) > 0 {
			return fragments, nil
		}
	} else {
		e.logger.Debugw("text line enumeration failed, using full text",
			"error", err,
		)
	}

	text, err := e.client.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	var fragments []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			fragments = append(fragments, line)
		}
	}
	return fragments, nil
}

func (e *Engine) Close() error {
	return e.client.Close()
}
