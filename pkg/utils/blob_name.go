package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const blobAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewBlobName returns "<unix-millis>-<random>.<ext>". The name never reuses
// any part of the uploaded file name except its extension.
func NewBlobName(ext string, now time.Time) (string, error) {
	suffix, err := gonanoid.Generate(blobAlphabet, 11)
	if err != nil {
		return "", err
	}
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix), nil
	}
	return fmt.Sprintf("%d-%s.%s", now.UnixMilli(), suffix, ext), nil
}

// FileExt is the lower-cased extension of name without the dot.
func FileExt(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}
