package runner

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxOutputTail bounds the command output kept in a TargetError.
const maxOutputTail = 2048

// TargetError reports a failed action on one project.
type TargetError struct {
	Action  string
	Project string

	// Output is the tail of the command's combined output.
	Output string

	Err error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Action, e.Project, e.Err)
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

// AsTargetError extracts the TargetError from err, if any.
func AsTargetError(err error) (*TargetError, bool) {
	var te *TargetError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

func outputTail(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) > maxOutputTail {
		i := len(s) - maxOutputTail
		for i < len(s) && !utf8.RuneStart(s[i]) {
			i++
		}
		s = "..." + s[i:]
	}
	return s
}
