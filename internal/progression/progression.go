// Package progression maps a class level and a grading result to the next
// class level. It is a fixed lookup with no stored state; the caller
// supplies the student's current class and is trusted to have verified it.
package progression

// ResultPass is the only result that advances a student.
const ResultPass = "pass"

// Graduated is the absorbing terminal level.
const Graduated = "Graduated"

var nextClass = map[string]string{
	"Class 1": "Class 2",
	"Class 2": "Class 3",
	"Class 3": "Class 4",
	"Class 4": "Class 5",
	"Class 5": Graduated,
	Graduated: Graduated,
}

// Advance returns the class level after applying a grading result. Any
// result other than "pass" keeps the student where they are, as does an
// unrecognized class level.
func Advance(current, result string) string {
	if result != ResultPass {
		return current
	}
	next, ok := nextClass[current]
	if !ok {
		return current
	}
	return next
}
