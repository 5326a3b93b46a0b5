package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName is returned when a caller-supplied name has no safe
// characters left after sanitizing.
var ErrInvalidName = errors.New("invalid name")

// Sanitize converts an untrusted name into a filesystem-safe one.
// Letters, digits, underscore, hyphen and dot are kept; path separators
// and whitespace become underscores; everything else is dropped. Runs of
// underscores are collapsed.
func Sanitize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == '/', r == '\\', r == ' ', r == '\t':
			b.WriteRune('_')
		}
	}

	name := b.String()
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	// Collapse dot runs so no traversal sequence survives sanitizing.
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}
	name = strings.Trim(name, "_")

	// A name made of nothing but dots ("." or "..") is a directory
	// reference, not a filename.
	if strings.Trim(name, "._") == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, raw)
	}
	return name, nil
}

// SubmissionName builds the stored filename for an answer sheet. The
// timestamp component keeps repeated uploads from the same student from
// colliding (second granularity; see the store docs for the accepted race).
func SubmissionName(studentName string, ts int64) (string, error) {
	safe, err := Sanitize(studentName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%d_AnswerSheet.pdf", safe, ts), nil
}

// ExamName builds the canonical filename for a published exam paper.
// There is exactly one exam per (subject, class, group) cell, so the name
// carries only the class level.
func ExamName(classLevel string) (string, error) {
	safe, err := Sanitize(classLevel)
	if err != nil {
		return "", err
	}
	return safe + "_Final_Exam.pdf", nil
}
