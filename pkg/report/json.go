package report

import (
	"encoding/json"
	"io"
)

// JSONOutput is the JSON structure written to output files.
type JSONOutput struct {
	Valid        bool      `json:"valid"`
	Worst        Severity  `json:"worst"`
	Messages     []Message `json:"messages"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	NoticeCount  int       `json:"notice_count"`
}

// WriteJSON writes the report in JSON format to w.
func (r *Report) WriteJSON(w io.Writer) error {
	out := JSONOutput{
		Valid:        r.IsValid(),
		Worst:        r.Worst(),
		Messages:     r.Messages,
		ErrorCount:   r.ErrorCount(),
		WarningCount: r.WarningCount(),
		NoticeCount:  r.NoticeCount(),
	}
	if out.Messages == nil {
		out.Messages = []Message{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
