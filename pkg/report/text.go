package report

import (
	"fmt"
	"io"
)

// WriteText writes human-readable admission output to w.
func (r *Report) WriteText(w io.Writer) {
	for _, m := range r.Messages {
		fmt.Fprintln(w, m.String())
	}
	if r.IsValid() && r.WarningCount() == 0 {
		fmt.Fprintln(w, "No errors or warnings detected.")
	} else {
		fmt.Fprintf(w, "Check finished. Errors: %d, Warnings: %d, Notices: %d\n",
			r.ErrorCount(), r.WarningCount(), r.NoticeCount())
	}
}
