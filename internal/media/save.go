package media

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// SaveImage writes a decoded image to a temp file as PNG and returns
// the file path. pattern follows os.CreateTemp conventions.
func SaveImage(img image.Image, pattern string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("encoding png: %w", err)
	}
	return f.Name(), nil
}
