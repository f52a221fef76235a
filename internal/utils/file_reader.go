// internal/utils/file_reader.go
package utils

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

// LoadHTMLContentFromFile reads a trusted HTML fragment from disk.
func LoadHTMLContentFromFile(filePath string) (template.HTML, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for '%s': %w", filePath, err)
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("read file '%s': %w", absPath, err)
	}
	return template.HTML(content), nil
}
