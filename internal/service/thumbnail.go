package service

import (
	"bytes"

	"github.com/disintegration/imaging"
)

const (
	ImageThumbnailWidth = 320
	VideoThumbnailWidth = 640
)

// MakeThumbnail decodes an image, scales it to width keeping the aspect
// ratio and re-encodes it as JPEG. Images narrower than width are only
// re-encoded.
func MakeThumbnail(data []byte, width int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
