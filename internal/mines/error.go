package mines

import "fmt"

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

// panics [AssertionError]
func assert(cond bool, format string, args ...any) {
	if !cond {
		panic(AssertionError{fmt.Sprintf(format, args...)})
	}
}
