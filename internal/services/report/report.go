package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"dermascan/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// ErrImageMissing is returned when the stored image backing a prediction
// record no longer exists on disk. Callers surface this as "report
// unavailable" rather than producing a corrupt document.
var ErrImageMissing = errors.New("prediction image is missing")

const (
	imageBoxSize = 200 // embedded image edge length in points
	marginLeft   = 50
)

// Generate renders a single-page PDF report for one prediction record:
// title, owning username, timestamp, predicted label, confidence percentage
// and the stored image at a fixed size.
func Generate(p *models.Prediction, username, imagePath string) ([]byte, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrImageMissing, imagePath)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle("Skin Lesion Prediction Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, 40)
	pdf.Cell(0, 20, "Skin Lesion Prediction Report")

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("User: %s", username),
		fmt.Sprintf("Date: %s", p.CreatedAt.Format(models.DateFormat)),
		fmt.Sprintf("Prediction: %s", p.Result),
		fmt.Sprintf("Confidence: %.2f%%", p.Confidence),
	}
	y := 80.0
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.Cell(0, 16, line)
		y += 20
	}

	pdf.ImageOptions(imagePath, marginLeft, y+20, imageBoxSize, imageBoxSize,
		false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}
