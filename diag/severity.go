// Package diag implements the front-end's error catalogue, the
// suggester that enriches raw errors with hints, and the diagnostic
// report shared by the lexer, parser, and validator.
package diag

// Severity classifies how serious a diagnostic is.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	}
	return "UNKNOWN"
}
