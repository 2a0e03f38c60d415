package render

import (
	"bytes"
	"image/color"

	"github.com/disintegration/imaging"

	apperrors "github.com/delvemap/delvemap/pkg/errors"
)

// SquarePNG post-processes a rendered PNG into a size x size thumbnail.
// The image is scaled to fit inside the square, preserving aspect ratio,
// then centered on a transparent canvas. Used for dashboard tiles and the
// explore TUI preview, which both want uniform dimensions.
func SquarePNG(png []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "thumbnail size must be positive")
	}

	img, err := imaging.Decode(bytes.NewReader(png))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "decode PNG")
	}

	fitted := imaging.Fit(img, size, size, imaging.Lanczos)
	canvas := imaging.New(size, size, color.NRGBA{})
	canvas = imaging.PasteCenter(canvas, fitted)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "encode PNG")
	}
	return buf.Bytes(), nil
}
