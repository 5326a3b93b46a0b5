package storage

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Asha", "Asha"},
		{"spaces", "Class 3", "Class_3"},
		{"original filename", "My Lesson (1).pdf", "My_Lesson_1.pdf"},
		{"path separators", "a/b\\c", "a_b_c"},
		{"traversal", "../../etc/passwd", "._._etc_passwd"},
		{"unicode dropped", "géométrie.pdf", "gomtrie.pdf"},
		{"collapsed underscores", "a  b", "a_b"},
		{"trimmed underscores", " name ", "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sanitize(tt.in)
			if err != nil {
				t.Fatalf("Sanitize(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if strings.ContainsAny(got, `/\`) || strings.Contains(got, "..") {
				t.Errorf("Sanitize(%q) = %q still contains a path token", tt.in, got)
			}
		})
	}
}

func TestSanitizeRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "..", ".", "///", "日本語", "!@#$%"} {
		t.Run(in, func(t *testing.T) {
			if _, err := Sanitize(in); !errors.Is(err, ErrInvalidName) {
				t.Errorf("Sanitize(%q) err = %v, want ErrInvalidName", in, err)
			}
		})
	}
}

func TestSubmissionName(t *testing.T) {
	got, err := SubmissionName("Asha Rao", 1700000000)
	if err != nil {
		t.Fatalf("SubmissionName: %v", err)
	}
	want := "Asha_Rao_1700000000_AnswerSheet.pdf"
	if got != want {
		t.Errorf("SubmissionName = %q, want %q", got, want)
	}

	// Deterministic for the same inputs.
	again, _ := SubmissionName("Asha Rao", 1700000000)
	if again != got {
		t.Errorf("SubmissionName not deterministic: %q vs %q", again, got)
	}

	if _, err := SubmissionName("", 1700000000); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName for empty student, got %v", err)
	}
}

func TestExamName(t *testing.T) {
	got, err := ExamName("Class 3")
	if err != nil {
		t.Fatalf("ExamName: %v", err)
	}
	if got != "Class_3_Final_Exam.pdf" {
		t.Errorf("ExamName = %q, want Class_3_Final_Exam.pdf", got)
	}
}
