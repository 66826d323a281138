package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Document is the JSON form of a rendered report.
type Document struct {
	Build    Build     `json:"build"`
	Failures []Failure `json:"failures"`
}

// Render writes the failures of b to w as "text" or "json".
func Render(w io.Writer, format string, b Build, failures []Failure) error {
	switch format {
	case "json":
		if failures == nil {
			failures = []Failure{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Document{Build: b, Failures: failures})
	case "text", "":
		return renderText(w, b, failures)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func renderText(w io.Writer, b Build, failures []Failure) error {
	var sb strings.Builder

	mode := ""
	if b.Suppressed {
		mode = " (suppressed)"
	}
	fmt.Fprintf(&sb, "Build %s (%s): %d of %d targets failed%s\n", b.Name, b.ID, b.Failed, b.Total, mode)

	if len(failures) == 0 {
		sb.WriteString("No failures recorded.\n")
	}
	for _, f := range failures {
		label := f.Message
		if f.Action != "" {
			label = fmt.Sprintf("%s@%s: %s", f.Action, f.Project, f.Message)
		}
		if f.Panic {
			label += " [panic]"
		}
		fmt.Fprintf(&sb, "%d. %s\n", f.Seq, label)
		if f.Output != "" {
			for _, line := range strings.Split(f.Output, "\n") {
				fmt.Fprintf(&sb, "   | %s\n", line)
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
