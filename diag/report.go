package diag

import (
	"fmt"
	"sort"
	"strings"

	"mvdan.cc/sh-frontend/token"
)

// Diagnostic is a single lex, parse, semantic, or rule-pipeline finding.
type Diagnostic struct {
	Code       string
	Kind       Kind
	Severity   Severity
	Message    string
	Suggestion string
	Pos        token.Pos
	Position   token.Position // filled in when line/column info is available
	Source     string         // name of the rule or analyser that produced it
	Context    []token.Token  // surrounding tokens, for display
	Snippet    string         // source line with a caret marker, if available
}

func (d Diagnostic) String() string {
	loc := d.Position.String()
	msg := fmt.Sprintf("%s [%s] %s: %s", loc, d.Code, d.Severity, d.Message)
	if d.Suggestion != "" {
		msg += " (" + d.Suggestion + ")"
	}
	return msg
}

// Report accumulates diagnostics across one phase (or, via Merge, across
// the whole pipeline). Records are appended in production order; String
// renders a deterministic view sorted by (position, severity).
type Report struct {
	Diagnostics []Diagnostic
	MaxErrors   int // 0 means unbounded
	fatal       bool
}

// Add appends d to the report. It returns false once MaxErrors has been
// exceeded or a Fatal diagnostic has been recorded, signalling to the
// caller that the current phase should stop.
func (r *Report) Add(d Diagnostic) bool {
	r.Diagnostics = append(r.Diagnostics, d)
	if d.Severity == Fatal {
		r.fatal = true
	}
	if r.fatal {
		return false
	}
	return r.MaxErrors <= 0 || r.countAtLeast(Error) <= r.MaxErrors
}

// ShouldContinue reports whether the owning phase may keep collecting
// diagnostics, per the MaxErrors cap and any Fatal diagnostic seen.
func (r *Report) ShouldContinue() bool {
	if r.fatal {
		return false
	}
	if r.MaxErrors > 0 && r.countAtLeast(Error) >= r.MaxErrors {
		return false
	}
	return true
}

func (r *Report) countAtLeast(sev Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity >= sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any diagnostic at Error severity or above
// was recorded.
func (r *Report) HasErrors() bool { return r.countAtLeast(Error) > 0 }

// GetErrors returns all Error/Fatal diagnostics.
func (r *Report) GetErrors() []Diagnostic { return r.filter(Error) }

// GetWarnings returns all Warning diagnostics.
func (r *Report) GetWarnings() []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, d := range r.Diagnostics {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}

func (r *Report) filter(min Severity) []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, d := range r.Diagnostics {
		if d.Severity >= min {
			out = append(out, d)
		}
	}
	return out
}

// Merge appends another report's diagnostics onto r, in order.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
	if other.fatal {
		r.fatal = true
	}
}

// Sorted returns a copy of the diagnostics ordered by (position,
// severity), descending severity within the same position.
func (r *Report) Sorted() []Diagnostic {
	out := make([]Diagnostic, len(r.Diagnostics))
	copy(out, r.Diagnostics)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pos != out[j].Pos {
			return out[i].Pos < out[j].Pos
		}
		return out[i].Severity > out[j].Severity
	})
	return out
}

// String renders the report deterministically, one diagnostic per line.
func (r *Report) String() string {
	var b strings.Builder
	for _, d := range r.Sorted() {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}
