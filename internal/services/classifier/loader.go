package classifier

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// EnsureArtifact makes sure the model file exists at path, downloading it
// from url when it is missing. The response body is written verbatim to the
// artifact path. Any fetch failure is fatal to startup; there is no retry.
func EnsureArtifact(path, url string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat model artifact: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch model from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch model from %s: status %s", url, resp.Status)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model artifact: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write model artifact: %w", err)
	}

	return nil
}

// LoadLabels reads the label vocabulary file: one label per line, order
// significant (index maps to classifier output position). Lines are trimmed
// and blank lines skipped. An absent or empty vocabulary is an error.
func LoadLabels(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class names file: %w", err)
	}
	defer file.Close()

	var labels []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		label := strings.TrimSpace(scanner.Text())
		if label == "" {
			continue
		}
		labels = append(labels, label)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read class names file: %w", err)
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("class names file %s contains no labels", path)
	}

	return labels, nil
}
