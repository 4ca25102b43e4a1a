// Package diag formats the diagnostics produced by every pipeline stage
// (lexing, parsing, resolving, and runtime evaluation) into the wire format
// external tooling depends on, with an optional richer rendering for
// interactive CLI use.
package diag

import (
	"fmt"
	"strings"
)

// Kind distinguishes where a SourceError originated, which controls how it
// renders (lex/parse/resolve errors point at a line and optional lexeme;
// runtime errors put the location after the message).
type Kind int

const (
	Lex Kind = iota
	Parse
	Resolve
	Runtime
)

// SourceError is a single diagnostic tied to a source line, with an optional
// offending lexeme. It implements error.
type SourceError struct {
	Kind    Kind
	Line    int
	Lexeme  string // empty when the error isn't anchored to a specific token
	Message string
}

func New(kind Kind, line int, lexeme, message string) *SourceError {
	return &SourceError{Kind: kind, Line: line, Lexeme: lexeme, Message: message}
}

// Error renders the diagnostic wire format:
//
//	[line N] Error[ at '<lexeme>']: <message>     (lex/parse/resolve)
//	<message>\n[line N]                           (runtime)
func (e *SourceError) Error() string {
	if e.Kind == Runtime {
		return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
	}
	where := ""
	if e.Lexeme != "" {
		where = fmt.Sprintf(" at '%s'", e.Lexeme)
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, where, e.Message)
}

// FormatErrors joins the rendering of multiple errors, one per line, matching
// how the scanner/parser report accumulated causes.
func FormatErrors(errs []*SourceError) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// FormatWithContext renders a source-line-plus-caret view of err, an
// ergonomics enhancement for interactive CLI use layered on top of (never
// replacing) the plain Error() string.
func FormatWithContext(e *SourceError, source string) string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	lines := strings.Split(source, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return sb.String()
	}
	sourceLine := lines[e.Line-1]
	gutter := fmt.Sprintf("%4d | ", e.Line)
	sb.WriteString(gutter)
	sb.WriteString(sourceLine)
	sb.WriteString("\n")

	col := 0
	if e.Lexeme != "" {
		col = strings.Index(sourceLine, e.Lexeme)
	}
	if col < 0 {
		col = 0
	}
	sb.WriteString(strings.Repeat(" ", len(gutter)+col))
	sb.WriteString("^")
	return sb.String()
}
