package report

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dermascan/internal/models"
)

func writeTestImage(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: 180, G: 120, B: 90, A: 255})
		}
	}

	path := filepath.Join(dir, "lesion.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode image: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}
	return path
}

func testRecord() *models.Prediction {
	return &models.Prediction{
		ID:         7,
		UserID:     1,
		ImagePath:  "lesion.png",
		Result:     "Melanoma",
		Confidence: 97.31,
		CreatedAt:  time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestGenerate_ProducesPDF(t *testing.T) {
	imagePath := writeTestImage(t, t.TempDir())

	pdf, err := Generate(testRecord(), "alice", imagePath)
	if err != nil {
		t.Fatalf("Failed to generate report: %v", err)
	}

	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("Output does not look like a PDF: %q", pdf[:8])
	}
	if len(pdf) < 500 {
		t.Errorf("Report suspiciously small: %d bytes", len(pdf))
	}
}

func TestGenerate_MissingImage(t *testing.T) {
	_, err := Generate(testRecord(), "alice", filepath.Join(t.TempDir(), "gone.png"))
	if !errors.Is(err, ErrImageMissing) {
		t.Errorf("Expected ErrImageMissing, got %v", err)
	}
}
