package diag

// Kind is the phase a diagnostic was produced in.
type Kind int

const (
	LexKind Kind = iota
	ParseKind
	SemanticKind
	RuleKind
)

// Template is one entry in the closed error catalogue: a stable code, a
// default message, a default suggestion, a severity, and whether the
// parser can recover from it via panic-mode synchronisation.
type Template struct {
	Code          string
	Message       string
	Suggestion    string
	Severity      Severity
	Recoverable   bool
}

// Catalogue is the closed set of error templates (E001...E082) referenced
// by code elsewhere in the front-end. Not every populated entry is
// raised by the parser or lexer (E001 and E016, for example, are not);
// the unpopulated codes are reserved so that code references stay
// stable.
var Catalogue = map[string]Template{
	"E001": {"E001", "missing ';' before 'then'", "Add ';' before 'then'", Error, true},
	"E002": {"E002", "missing 'do' after 'for'", "Add 'do' before the loop body", Error, true},
	"E003": {"E003", "missing 'do' after 'while'", "Add 'do' before the loop body", Error, true},
	"E004": {"E004", "missing 'do' after 'until'", "Add 'do' before the loop body", Error, true},
	"E005": {"E005", "unclosed 'if' statement: expected 'fi'", "Add 'fi' to close the 'if'", Error, true},
	"E006": {"E006", "unclosed 'while' statement: expected 'done'", "Add 'done' to close the loop", Error, true},
	"E007": {"E007", "unclosed 'until' statement: expected 'done'", "Add 'done' to close the loop", Error, true},
	"E008": {"E008", "unclosed 'for' statement: expected 'done'", "Add 'done' to close the loop", Error, true},
	"E009": {"E009", "unclosed 'case' statement: expected 'esac'", "Add 'esac' to close the 'case'", Error, true},
	"E010": {"E010", "unclosed 'select' statement: expected 'done'", "Add 'done' to close the loop", Error, true},
	"E011": {"E011", "unclosed brace group: expected '}'", "Add '}' to close the group", Error, true},
	"E012": {"E012", "unclosed subshell: expected ')'", "Add ')' to close the subshell", Error, true},
	"E013": {"E013", "unclosed arithmetic command: expected '))'", "Add '))' to close the arithmetic command", Error, true},
	"E014": {"E014", "unclosed enhanced test: expected ']]'", "Add ']]' to close the test", Error, true},
	"E015": {"E015", "unexpected token", "", Error, true},
	"E016": {"E016", "unexpected end of input", "", Error, true},
	"E017": {"E017", "invalid function name", "Function names may not start with a digit or be a shell keyword", Error, true},
	"E018": {"E018", "invalid variable name in assignment", "Variable names must start with a letter or underscore", Error, true},
	"E019": {"E019", "empty arithmetic expression", "", Error, true},
	"E020": {"E020", "empty test expression", "", Error, true},
	"E021": {"E021", "redirect missing target", "", Error, true},
	"E022": {"E022", "invalid file descriptor, expected 0-9", "", Error, true},
	"E023": {"E023", "case pattern list missing ')'", "Add ')' after the pattern list", Error, true},
	"E024": {"E024", "case item missing terminator", "Add ';;', ';&', or ';;&'", Error, true},
	"E025": {"E025", "statements must be separated by ';', '&', or a newline", "Insert a separator", Error, true},
	"E026": {"E026", "'in' expected after for-loop variable", "Add 'in' followed by the word list, or 'do'", Error, true},
	"E027": {"E027", "malformed C-style for loop header", "Expected '(( init; cond; update ))'", Error, true},
	"E028": {"E028", "'then' expected", "Add 'then' after the condition", Error, true},
	"E029": {"E029", "'do' expected", "Add 'do' before the loop body", Error, true},

	"UNCLOSED_SINGLE_QUOTE": {"E030", "unclosed single-quoted string", "Add a closing '", Error, false},
	"UNCLOSED_DOUBLE_QUOTE": {"E031", "unclosed double-quoted string", "Add a closing \"", Error, false},
	"UNCLOSED_EXPANSION":    {"E032", "unclosed expansion", "", Error, false},
	"UNMATCHED_BRACKET":     {"E033", "unmatched bracket", "", Error, false},
	"UNCLOSED_HEREDOC":      {"E034", "unterminated heredoc: delimiter not found before end of input", "", Error, false},
}

// Lookup returns the template for code, or the generic E015 template if
// code is unknown — the catalogue never produces a nil template.
func Lookup(code string) Template {
	if t, ok := Catalogue[code]; ok {
		return t
	}
	return Catalogue["E015"]
}
