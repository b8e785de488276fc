package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/nfnt/resize"
)

// IsImage checks if the content type is a supported image format
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/jpeg") ||
		strings.HasPrefix(contentType, "image/png")
}

// OptimizeImage downscales an attached image to maxWidth, preserving the
// aspect ratio. Images already narrow enough come back unchanged.
func OptimizeImage(data []byte, maxWidth uint) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if uint(bounds.Dx()) <= maxWidth {
		return data, nil
	}

	// Lanczos3 for quality
	m := resize.Resize(maxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, m, &jpeg.Options{Quality: 85})
	case "png":
		err = png.Encode(&buf, m)
	default:
		// Decoded but not an encodable format; keep the original bytes.
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// EncodeNoteImage optimizes raw upload bytes and returns the data URI
// payload stored on the note.
func EncodeNoteImage(data []byte, contentType string, maxWidth uint) (string, error) {
	if !IsImage(contentType) {
		return "", fmt.Errorf("unsupported image type: %s", contentType)
	}
	optimized, err := OptimizeImage(data, maxWidth)
	if err != nil {
		return "", fmt.Errorf("failed to optimize image: %w", err)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(optimized), nil
}
