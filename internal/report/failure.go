package report

import (
	"errors"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/batchrun/internal/collector"
	"github.com/roach88/batchrun/internal/runner"
)

// Build describes one recorded build.
type Build struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Suppressed bool   `json:"suppressed"`
	Total      int    `json:"total"`
	Ran        int    `json:"ran"`
	Failed     int    `json:"failed"`
}

// Failure is a stored build failure.
type Failure struct {
	Seq     int    `json:"seq"`
	Action  string `json:"action,omitempty"`
	Project string `json:"project,omitempty"`
	Message string `json:"message"`
	Output  string `json:"output,omitempty"`
	Panic   bool   `json:"panic,omitempty"`
}

// FailureFromError converts a collected error into a Failure with the
// given sequence number.
func FailureFromError(seq int, err error) Failure {
	f := Failure{Seq: seq, Message: norm.NFC.String(err.Error())}
	if te, ok := runner.AsTargetError(err); ok {
		f.Action = te.Action
		f.Project = te.Project
		f.Message = norm.NFC.String(te.Err.Error())
		f.Output = norm.NFC.String(te.Output)
	}
	var pe *collector.PanicError
	if errors.As(err, &pe) {
		f.Panic = true
	}
	return f
}
