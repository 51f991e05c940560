package preprocess

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("Failed to encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestImageToTensor_ShapeIsFixed(t *testing.T) {
	const size = 224

	cases := []struct {
		name string
		data []byte
	}{
		{"small png", encodePNG(t, 32, 32)},
		{"large png", encodePNG(t, 640, 480)},
		{"square jpeg", encodeJPEG(t, 512, 512)},
		{"narrow jpeg", encodeJPEG(t, 100, 700)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tensor, err := ImageToTensor(tc.data, size)
			if err != nil {
				t.Fatalf("Failed to preprocess: %v", err)
			}
			if len(tensor) != size*size*Channels {
				t.Errorf("Expected %d values, got %d", size*size*Channels, len(tensor))
			}
		})
	}
}

func TestImageToTensor_ValuesAreNormalized(t *testing.T) {
	tensor, err := ImageToTensor(encodePNG(t, 300, 200), 64)
	if err != nil {
		t.Fatalf("Failed to preprocess: %v", err)
	}

	for i, v := range tensor {
		if v < 0 || v > 1 {
			t.Fatalf("Value %f at index %d outside [0, 1]", v, i)
		}
	}
}

func TestImageToTensor_WhitePixelIsOne(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}

	tensor, err := ImageToTensor(buf.Bytes(), 8)
	if err != nil {
		t.Fatalf("Failed to preprocess: %v", err)
	}
	for i, v := range tensor {
		if v != 1.0 {
			t.Fatalf("Expected 1.0 for white pixel, got %f at index %d", v, i)
		}
	}
}

func TestImageToTensor_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not an image")},
		{"truncated png", encodePNG(t, 64, 64)[:20]},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ImageToTensor(tc.data, 224)
			if !errors.Is(err, ErrBadImage) {
				t.Errorf("Expected ErrBadImage, got %v", err)
			}
		})
	}
}
