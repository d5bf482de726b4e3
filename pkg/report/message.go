package report

import "fmt"

// Severity of a notice. Values are ordered, so the worst of a set is its max.
type Severity int

const (
	OK Severity = iota
	Notice
	Warning
	Error
)

var severityNames = [...]string{
	OK:      "OK",
	Notice:  "NOTICE",
	Warning: "WARNING",
	Error:   "ERROR",
}

func (s Severity) String() string {
	if s < OK || s > Error {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by String.
func (s *Severity) UnmarshalText(b []byte) error {
	for i, name := range severityNames {
		if name == string(b) {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", b)
}

// Message is a single notice produced while admitting a manifest. Message
// text is an HTML fragment meant to be shown verbatim to manifest admins.
type Message struct {
	Severity Severity `json:"severity"`
	CheckID  string   `json:"check_id"`
	Message  string   `json:"message"`
	Location string   `json:"location,omitempty"`
}

func (m Message) String() string {
	if m.Location != "" {
		return fmt.Sprintf("%s(%s): %s [%s]", m.Severity, m.CheckID, m.Message, m.Location)
	}
	return fmt.Sprintf("%s(%s): %s", m.Severity, m.CheckID, m.Message)
}

// Worst returns the highest severity among msgs, or OK if there are none.
func Worst(msgs []Message) Severity {
	worst := OK
	for _, m := range msgs {
		if m.Severity > worst {
			worst = m.Severity
		}
	}
	return worst
}

// Report collects all messages from an admission run.
type Report struct {
	Messages []Message `json:"messages"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Add appends a message to the report.
func (r *Report) Add(sev Severity, checkID string, msg string) {
	r.Messages = append(r.Messages, Message{
		Severity: sev,
		CheckID:  checkID,
		Message:  msg,
	})
}

// AddWithLocation appends a message with a location to the report.
func (r *Report) AddWithLocation(sev Severity, checkID string, msg string, location string) {
	r.Messages = append(r.Messages, Message{
		Severity: sev,
		CheckID:  checkID,
		Message:  msg,
		Location: location,
	})
}

// Append adds already built messages, keeping their order.
func (r *Report) Append(msgs ...Message) {
	r.Messages = append(r.Messages, msgs...)
}

func (r *Report) count(sev Severity) int {
	n := 0
	for _, m := range r.Messages {
		if m.Severity == sev {
			n++
		}
	}
	return n
}

// ErrorCount returns the number of ERROR messages.
func (r *Report) ErrorCount() int { return r.count(Error) }

// WarningCount returns the number of WARNING messages.
func (r *Report) WarningCount() int { return r.count(Warning) }

// NoticeCount returns the number of NOTICE messages.
func (r *Report) NoticeCount() int { return r.count(Notice) }

// Worst returns the highest severity present in the report.
func (r *Report) Worst() Severity {
	return Worst(r.Messages)
}

// IsValid returns true if there are no ERROR messages.
func (r *Report) IsValid() bool {
	return r.ErrorCount() == 0
}
