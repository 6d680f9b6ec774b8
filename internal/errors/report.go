package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sunholo/tidal/internal/schema"
)

// Report is the canonical structured error type for the term core.
// All error builders return *Report, which can be wrapped as ReportError
type Report struct {
	Schema  string         `json:"schema"`         // Always schema.ErrorV1
	Code    string         `json:"code"`           // Error code (GRF001, TRM001, etc.)
	Phase   string         `json:"phase"`          // Phase: "abt", "term", "codec"
	Message string         `json:"message"`        // Human-readable message
	Data    map[string]any `json:"data,omitempty"` // Structured data (sorted keys)
}

// New creates a report for the given code and phase.
func New(code, phase, message string) *Report {
	return &Report{
		Schema:  schema.ErrorV1,
		Code:    code,
		Phase:   phase,
		Message: message,
	}
}

// Newf creates a report with a formatted message.
func Newf(code, phase, format string, args ...any) *Report {
	return New(code, phase, fmt.Sprintf(format, args...))
}

// With attaches a structured data field and returns the report.
func (r *Report) With(key string, value any) *Report {
	if r.Data == nil {
		r.Data = make(map[string]any)
	}
	r.Data[key] = value
	return r
}

// ReportError wraps a Report as an error.
// This allows structured reports to survive errors.As() unwrapping
type ReportError struct {
	Rep *Report
}

// Error implements the error interface
func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain.
// Returns the Report and true if found, nil and false otherwise
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as a ReportError.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON converts a Report to deterministic JSON with sorted keys.
func (r *Report) ToJSON() (string, error) {
	data, err := schema.MarshalDeterministic(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Human renders the report for terminal display, coloring the code red
// and the phase dim.
func (r *Report) Human() string {
	var b strings.Builder
	b.WriteString(color.New(color.FgRed, color.Bold).Sprint(r.Code))
	b.WriteString(" ")
	b.WriteString(color.New(color.Faint).Sprintf("[%s]", r.Phase))
	b.WriteString(" ")
	b.WriteString(r.Message)
	for _, k := range sortedKeys(r.Data) {
		fmt.Fprintf(&b, "\n  %s: %v", color.CyanString(k), r.Data[k])
	}
	return b.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
