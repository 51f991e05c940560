package preprocess

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// Channels is the number of color channels the classifier expects.
const Channels = 3

// ErrBadImage is returned when the uploaded bytes cannot be decoded as an
// image in any supported format.
var ErrBadImage = errors.New("cannot decode image")

// ImageToTensor decodes uploaded image bytes and converts them to the flat
// input tensor of a single-element batch: shape (1, size, size, 3), HWC
// layout, channel values scaled to [0, 1].
//
// The resize is a naive stretch to size x size; aspect ratio is not
// preserved.
func ImageToTensor(data []byte, size int) ([]float32, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrBadImage)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	resized := resize.Resize(uint(size), uint(size), img, resize.Bilinear)

	tensor := make([]float32, size*size*Channels)
	i := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			// RGBA returns 16-bit values; keep the high byte to match
			// 8-bit pixel data before scaling by 1/255.
			tensor[i] = float32(r>>8) / 255.0
			tensor[i+1] = float32(g>>8) / 255.0
			tensor[i+2] = float32(b>>8) / 255.0
			i += Channels
		}
	}

	return tensor, nil
}
