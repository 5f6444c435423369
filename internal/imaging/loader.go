package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
)

// ErrImageLoad indicates a missing or undecodable image file. Callers can
// test for it with errors.Is to distinguish loading failures from later
// pipeline failures.
var ErrImageLoad = errors.New("image load failed")

// Load reads and decodes an image file from disk.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats
//     are PNG, JPEG, and GIF.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the image
//     format and color model (e.g., *image.NRGBA, *image.YCbCr).
//   - error: Non-nil if the file cannot be opened or decoded. The error
//     wraps ErrImageLoad in both cases.
//
// The decoded pixel buffer is owned by the caller. Load performs no caching;
// every call reads the file again, so concurrent calls never share memory.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrImageLoad, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrImageLoad, path, err)
	}

	return img, nil
}
