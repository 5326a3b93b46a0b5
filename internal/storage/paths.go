package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Category determines which subtree of the upload root a file lives in.
type Category int

const (
	// CategoryExam is a published exam paper.
	CategoryExam Category = iota
	// CategoryNote is a lesson notes file.
	CategoryNote
	// CategorySubmission is a completed answer sheet.
	CategorySubmission
)

var (
	// ErrInvalidCategory is returned for an unrecognized content category.
	ErrInvalidCategory = errors.New("unknown content category")
	// ErrPathEscape is returned when a sanitized path segment still
	// contains a traversal token.
	ErrPathEscape = errors.New("path segment escapes upload root")
)

// Resolver computes canonical on-demand directories under the upload root.
type Resolver struct {
	root string
}

// NewResolver creates a resolver rooted at the given directory.
func NewResolver(root string) *Resolver {
	if root == "" {
		root = "./uploads"
	}
	return &Resolver{root: root}
}

// Root returns the upload root directory.
func (r *Resolver) Root() string { return r.root }

// Dir resolves (and creates, if absent) the directory for a category.
// Exam papers take two attribute segments (subject, accessibility group);
// notes and submissions take none. Every segment is sanitized before it
// becomes a path component.
func (r *Resolver) Dir(cat Category, segments ...string) (string, error) {
	parts := []string{r.root}
	switch cat {
	case CategoryExam:
		parts = append(parts, "exams")
	case CategoryNote:
		parts = append(parts, "notes")
	case CategorySubmission:
		parts = append(parts, "submissions")
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidCategory, cat)
	}

	for _, seg := range segments {
		if strings.Contains(seg, "..") {
			return "", fmt.Errorf("%w: %q", ErrPathEscape, seg)
		}
		safe, err := Sanitize(seg)
		if err != nil {
			return "", err
		}
		if strings.Contains(safe, "..") || strings.ContainsAny(safe, `/\`) {
			return "", fmt.Errorf("%w: %q", ErrPathEscape, seg)
		}
		parts = append(parts, safe)
	}

	dir := filepath.Join(parts...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}
