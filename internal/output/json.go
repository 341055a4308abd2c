package output

import (
	"fmt"
	"io"

	"github.com/revue-dev/revue/internal/report"
)

// JSONWriter outputs the full report as indented JSON. The encoding is
// deterministic: identical reports produce identical bytes.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, rep *report.Report) error {
	data, err := rep.JSON()
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
