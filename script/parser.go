package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "EOL", Pattern: `\r?\n`},
		{Name: "Tab", Pattern: `\t`},
		{Name: "Field", Pattern: `[^\t\r\n]+`},
		{Name: "CR", Pattern: `\r`},
	})

	eolTokenType   = mustTokenType("EOL")
	tabTokenType   = mustTokenType("Tab")
	fieldTokenType = mustTokenType("Field")
	crTokenType    = mustTokenType("CR")
)

// Delimiter separates the key from its arguments and the arguments from each other.
const Delimiter = '\t'

// CommentPrefix marks a line that is ignored entirely.
const CommentPrefix = "#"

// Script is an ordered list of directive lines. Blank and comment lines are not kept.
type Script struct {
	Lines []*Line `json:"lines"`
}

// Line is a single directive line split on tabs.
type Line struct {
	Pos  lexer.Position `json:"-"`
	Raw  string         `json:"raw"`
	Key  string         `json:"key"`
	Args []string       `json:"args"`
}

// Number returns the 1-based line number inside the script.
func (l *Line) Number() int {
	if l == nil {
		return 0
	}
	return l.Pos.Line
}

// Arg returns argument i (0 is the first field after the key).
func (l *Line) Arg(i int) (string, bool) {
	if l == nil || i < 0 || i >= len(l.Args) {
		return "", false
	}
	return l.Args[i], true
}

// String returns the raw line text.
func (l *Line) String() string {
	if l == nil {
		return ""
	}
	return l.Raw
}

// Parse reads a whole script from r.
func Parse(r io.Reader) (*Script, error) {
	return parse("", r)
}

// ParseString parses a script held in memory.
func ParseString(input string) (*Script, error) {
	return parse("", strings.NewReader(input))
}

// ParseFile parses a script and records filename in line positions.
func ParseFile(filename string, r io.Reader) (*Script, error) {
	return parse(filename, r)
}

func parse(filename string, r io.Reader) (*Script, error) {
	lex, err := scriptLexer.Lex(filename, r)
	if err != nil {
		return nil, err
	}

	doc := &Script{}
	var (
		fields []string
		pos    lexer.Position
		open   bool
	)
	flush := func() {
		if !open {
			return
		}
		if line := newLine(pos, fields); line != nil {
			doc.Lines = append(doc.Lines, line)
		}
		fields = nil
		open = false
	}
	start := func(tok lexer.Token) {
		if open {
			return
		}
		open = true
		pos = tok.Pos
		fields = []string{""}
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			break
		}
		switch tok.Type {
		case eolTokenType:
			flush()
		case tabTokenType:
			start(tok)
			fields = append(fields, "")
		case fieldTokenType:
			start(tok)
			fields[len(fields)-1] += tok.Value
		case crTokenType:
			// stray carriage return not followed by a newline
		default:
			return nil, fmt.Errorf("%s: unexpected token %q", tok.Pos, tok.Value)
		}
	}
	flush()
	return doc, nil
}

// newLine builds a Line from its fields, or nil for comment lines.
func newLine(pos lexer.Position, fields []string) *Line {
	raw := strings.Join(fields, string(Delimiter))
	if raw == "" || strings.HasPrefix(raw, CommentPrefix) {
		return nil
	}
	return &Line{
		Pos:  pos,
		Raw:  raw,
		Key:  fields[0],
		Args: fields[1:],
	}
}

func mustTokenType(name string) lexer.TokenType {
	symbols := scriptLexer.Symbols()
	tt, ok := symbols[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
