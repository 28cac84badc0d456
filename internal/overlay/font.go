package overlay

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"framestamp/internal/logging"
)

// font resources tried in order when the config does not name one.
// The label mixes CJK and ASCII, so CJK-capable faces come first.
func DefaultFontPaths() []string {
	return []string{
		"simhei.ttf",
		"msyh.ttc",
		"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
		"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
		"/System/Library/Fonts/PingFang.ttc",
		`C:\Windows\Fonts\simhei.ttf`,
		`C:\Windows\Fonts\msyh.ttc`,
	}
}

// loads the first usable font face from paths, falling back to the built-in
// bitmap face. Best effort: a missing font never aborts rendering.
func resolveFace(paths []string, scale float64, logger *logging.Logger) font.Face {
	size := scale * 20
	if size <= 0 {
		size = 20
	}

	for _, path := range paths {
		face, err := loadFace(path, size)
		if err != nil {
			logger.Debugw("label font not usable",
				"path", path,
				"error", err,
			)
			continue
		}
		logger.Debugw("label font loaded", "path", path)
		return face
	}

	logger.Warnw("no label font available, using built-in default")
	return basicfont.Face7x13
}

func loadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f *sfnt.Font
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttc", ".otc":
		collection, err := sfnt.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font collection: %w", err)
		}
		f, err = collection.Font(0)
		if err != nil {
			return nil, fmt.Errorf("failed to load collection font: %w", err)
		}
	default:
		f, err = sfnt.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
	}

	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
