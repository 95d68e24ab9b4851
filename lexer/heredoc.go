package lexer

import (
	"strconv"
	"strings"

	"mvdan.cc/sh-frontend/diag"
	"mvdan.cc/sh-frontend/token"
)

// pendingHeredoc is a heredoc introducer whose body hasn't been
// collected yet; entries queue in FIFO order, since multiple heredocs
// can be pending on one line ("cat <<A <<B").
type pendingHeredoc struct {
	key      string
	delim    string
	quoted   bool // expansions suppressed in the body
	stripTab bool // <<- : leading tabs stripped from each body line
	introPos int
}

// heredocState owns the FIFO queue of pending heredocs and the bodies
// collected for each, keyed by a unique id attached to the introducer.
type heredocState struct {
	pending []pendingHeredoc
	bodies  map[string]string
	nextID  int
}

func newHeredocState() *heredocState {
	return &heredocState{bodies: map[string]string{}}
}

// scanHeredocIntro recognises "<<" or "<<-", captures the delimiter
// word that follows (honouring quoting, which suppresses expansion in
// the body), and registers a pending heredoc keyed by a unique id
// stashed in the introducer token's Value so the parser can look the
// body up later.
func (l *lexer) scanHeredocIntro() {
	start := l.pos
	strip := false
	kind := token.HEREDOC
	l.pos += 2
	if l.pos < len(l.src) && l.src[l.pos] == '-' {
		strip = true
		kind = token.HEREDOC_STRIP
		l.pos++
	}
	introEnd := l.pos
	l.skipBlanks()

	delimStart := l.pos
	quoted := false
	var delim string
	if l.pos < len(l.src) && (l.src[l.pos] == '\'' || l.src[l.pos] == '"') {
		q := l.src[l.pos]
		quoted = true
		l.pos++
		s := l.pos
		for l.pos < len(l.src) && l.src[l.pos] != q {
			l.pos++
		}
		delim = string(l.src[s:l.pos])
		if l.pos < len(l.src) {
			l.pos++
		}
	} else {
		s := l.pos
		for l.pos < len(l.src) && !isWordBreak(l.src[l.pos]) {
			if l.src[l.pos] == '\\' {
				quoted = true
			}
			l.pos++
		}
		delim = strings.ReplaceAll(string(l.src[s:l.pos]), "\\", "")
	}

	l.heredocs.nextID++
	key := "heredoc$" + strconv.Itoa(l.heredocs.nextID)
	l.heredocs.pending = append(l.heredocs.pending, pendingHeredoc{
		key: key, delim: delim, quoted: quoted, stripTab: strip, introPos: start,
	})

	l.emit(token.Token{
		Kind: kind, Value: key, Start: token.Pos(start), End: token.Pos(introEnd),
		Meta: token.Metadata{SemanticType: token.SemanticRedirect, PairedIndex: -1},
	})
	l.emit(token.Token{
		Kind: token.STRING, Value: delim, Start: token.Pos(delimStart), End: token.Pos(l.pos),
		Quote: quoteCharOrZero(quoted), Meta: token.Metadata{SemanticType: token.SemanticLiteral, PairedIndex: -1},
	})
}

func quoteCharOrZero(quoted bool) byte {
	if quoted {
		return '\''
	}
	return 0
}

// collectDueHeredocs is called whenever the driver reaches a newline:
// every pending heredoc (FIFO) consumes the following lines, up to and
// excluding a line equal to its delimiter (after optional tab-stripping
// for <<-), as its body. Heredoc bodies are not tokenised.
func (l *lexer) collectDueHeredocs() {
	if len(l.heredocs.pending) == 0 {
		return
	}
	pending := l.heredocs.pending
	l.heredocs.pending = nil

	for _, ph := range pending {
		var body strings.Builder
		closed := false
		for l.pos <= len(l.src) {
			lineStart := l.pos
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			line := string(l.src[lineStart:l.pos])
			check := line
			if ph.stripTab {
				check = strings.TrimLeft(line, "\t")
			}
			atEOF := l.pos >= len(l.src)
			if check == ph.delim {
				closed = true
				if !atEOF {
					l.pos++ // consume delimiter line's newline
				}
				break
			}
			if ph.stripTab {
				line = strings.TrimLeft(line, "\t")
			}
			body.WriteString(line)
			body.WriteByte('\n')
			if atEOF {
				break
			}
			l.pos++ // consume this line's newline
		}
		l.heredocs.bodies[ph.key] = body.String()
		if !closed {
			t := diag.Lookup("UNCLOSED_HEREDOC")
			l.report.Add(diag.Diagnostic{
				Code: t.Code, Kind: diag.LexKind, Severity: t.Severity,
				Message: t.Message, Pos: token.Pos(ph.introPos),
			})
		}
	}
}
