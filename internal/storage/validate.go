package storage

import (
	"errors"
	"sort"
	"strings"
)

// ValidationError reports why an upload was rejected. It always carries a
// caller-presentable reason and implies that no file was written.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// IsValidationError reports whether err is any of the pre-write rejection
// errors, including name and path failures from sanitizing.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrPathEscape) ||
		errors.Is(err, ErrInvalidCategory)
}

var allowedExtensions = map[string]bool{
	"pdf":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
}

// ValidateUpload enforces the accepted-extension allow-list and
// required-field presence before any write occurs. Checks run in order and
// stop at the first failure. No I/O happens here.
func ValidateUpload(filename string, size int64, required map[string]string) error {
	if size <= 0 {
		return &ValidationError{Reason: "no file uploaded"}
	}
	if filename == "" {
		return &ValidationError{Reason: "filename is empty"}
	}

	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = strings.ToLower(filename[i+1:])
	}
	if !allowedExtensions[ext] {
		return &ValidationError{Reason: "file type ." + ext + " is not allowed (pdf, png, jpg, jpeg)"}
	}

	keys := make([]string, 0, len(required))
	for k := range required {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.TrimSpace(required[k]) == "" {
			return &ValidationError{Reason: k + " is required"}
		}
	}
	return nil
}
