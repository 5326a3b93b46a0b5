package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned when a delete or read targets a file that does
// not exist. It is a negative result, not a failure.
var ErrNotFound = errors.New("file not found")

// Store persists exam papers, lesson notes and answer submissions under a
// single upload root. Publishing overwrites the canonical exam for its
// (subject, class, group) identity; notes overwrite on filename collision;
// submissions always get a fresh timestamped name.
type Store struct {
	resolver *Resolver
}

// NewStore creates a store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{resolver: NewResolver(root)}
}

// Root returns the upload root directory.
func (s *Store) Root() string { return s.resolver.Root() }

// PublishExam writes the canonical exam paper for the given class, subject
// and accessibility group, replacing any prior exam at that identity.
// Returns the stored filename.
func (s *Store) PublishExam(r io.Reader, classLevel, subject, group string) (string, error) {
	dir, err := s.resolver.Dir(CategoryExam, subject, group)
	if err != nil {
		return "", err
	}
	name, err := ExamName(classLevel)
	if err != nil {
		return "", err
	}
	if err := writeAtomic(filepath.Join(dir, name), r); err != nil {
		return "", fmt.Errorf("write exam: %w", err)
	}
	return name, nil
}

// SaveNotes stores a lesson notes file under its sanitized original
// filename, overwriting a previous upload of the same name.
func (s *Store) SaveNotes(r io.Reader, originalName string) (string, error) {
	name, err := Sanitize(originalName)
	if err != nil {
		return "", err
	}
	dir, err := s.resolver.Dir(CategoryNote)
	if err != nil {
		return "", err
	}
	if err := writeAtomic(filepath.Join(dir, name), r); err != nil {
		return "", fmt.Errorf("write notes: %w", err)
	}
	return name, nil
}

// SaveSubmission stores an answer sheet under a timestamped name so that
// repeated uploads never overwrite each other. Two uploads for the same
// student within the same second can still collide; that race is accepted
// rather than locked around.
func (s *Store) SaveSubmission(r io.Reader, studentName string, now time.Time) (string, error) {
	name, err := SubmissionName(studentName, now.Unix())
	if err != nil {
		return "", err
	}
	dir, err := s.resolver.Dir(CategorySubmission)
	if err != nil {
		return "", err
	}
	if err := writeAtomic(filepath.Join(dir, name), r); err != nil {
		return "", fmt.Errorf("write submission: %w", err)
	}
	return name, nil
}

// ListSubmissions returns the stored submission filenames in directory
// order. A missing submissions directory means no uploads yet, not an
// error.
func (s *Store) ListSubmissions() ([]string, error) {
	dir := filepath.Join(s.resolver.Root(), "submissions")
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// DeleteSubmission removes a stored answer sheet. Returns ErrNotFound if
// no submission with that name exists.
func (s *Store) DeleteSubmission(filename string) error {
	name, err := Sanitize(filename)
	if err != nil {
		return err
	}
	dir, err := s.resolver.Dir(CategorySubmission)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, name))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	return nil
}

// Open returns a reader for a stored file addressed by its path relative
// to the upload root (e.g. "submissions/Asha_17_AnswerSheet.pdf").
func (s *Store) Open(key string) (io.ReadCloser, error) {
	key = filepath.Clean(strings.TrimPrefix(key, "/"))
	if key == "." || strings.HasPrefix(key, "..") || filepath.IsAbs(key) {
		return nil, fmt.Errorf("%w: %q", ErrPathEscape, key)
	}
	f, err := os.Open(filepath.Join(s.resolver.Root(), key))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// writeAtomic writes to a temp file in the destination directory and
// renames it into place, so a concurrent reader never sees a partially
// written file and a mid-write failure leaves no destination file behind.
func writeAtomic(dst string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
