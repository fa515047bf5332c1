// Package dsl parses .fit documents: resources, styles and pages made of
// frames whose styled runs are laid out and fitted.
package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	fitLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+|\.\d+)(?:e-?\d+)?(?:pt|mm|cm|in|x)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][(),.=+*/%<>!?;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	tokenTypeNames = symbolNames(fitLexer.Symbols())
	newlineToken   = tokenType("Newline")
	lbraceToken    = tokenType("LBrace")
	rbraceToken    = tokenType("RBrace")
	symbolToken    = tokenType("Symbol")
	stringToken    = tokenType("String")

	documentParser = participle.MustBuild[Document](
		participle.Lexer(fitLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
		// 空行与注释行会产生多个 Newline，可选的语句块需要回溯越过它们
		participle.UseLookahead(participle.MaxLookahead),
	)
)

// Document is the root of a .fit file.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'doc' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is one of meta, resources or page.
type Section struct {
	Meta      *MetaSection      `parser:"  @@"`
	Resources *ResourcesSection `parser:"| @@"`
	Page      *PageSection      `parser:"| @@"`
}

// Kind names the section.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Meta != nil:
		return "meta"
	case s.Resources != nil:
		return "resources"
	case s.Page != nil:
		return "page"
	}
	return "unknown"
}

// MetaSection holds document info assignments (title, author, ...).
type MetaSection struct {
	Block *Block `parser:"'meta' @@"`
}

// ResourcesSection declares fonts, colors and styles.
type ResourcesSection struct {
	Block *Block `parser:"'resources' @@"`
}

// PageSection is `page <width> <height> [key value...] { frames }`.
type PageSection struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Params []*Lexeme      `parser:"'page' @@*"`
	Block  *Block         `parser:"@@"`
}

// Block is a braced statement list.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement is an assignment, a command or a bare string.
type Statement struct {
	Assignment *Assignment  `parser:"  @@"`
	Command    *Command     `parser:"| @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Assignment is `key: value`.
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Command is `name args... [{ ... }]`, e.g. frames, runs and resources.
type Command struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Lexeme      `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// TextLiteral is a string statement, the text of a run.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value is the right hand side of an assignment.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Array  *ArrayValue    `parser:"| @@"`
	Ident  *string        `parser:"| @Ident"`
}

// ArrayValue is `[ v, v ... ]`.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// Lexeme is a single token used as a command argument.
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

// Parse implements participle.Parseable.
func (l *Lexeme) Parse(lex *lexer.PeekingLexer) error {
	if endsArgs(lex.Peek()) {
		return participle.NextMatch
	}
	lexeme, err := nextLexeme(lex)
	if err != nil {
		return err
	}
	*l = *lexeme
	return nil
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a document from r.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses a document from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

func nextLexeme(lex *lexer.PeekingLexer) (*Lexeme, error) {
	tok := lex.Next()
	if tok.EOF() {
		return nil, participle.NextMatch
	}
	name, ok := tokenTypeNames[tok.Type]
	if !ok {
		name = fmt.Sprintf("#%d", tok.Type)
	}
	value := tok.Value
	if tok.Type == stringToken {
		unquoted, err := strconv.Unquote(tok.Value)
		if err != nil {
			return nil, err
		}
		value = unquoted
	}
	return &Lexeme{Type: name, Value: value, Raw: tok.Value, Pos: tok.Pos}, nil
}

func endsArgs(tok *lexer.Token) bool {
	if tok == nil || tok.EOF() {
		return true
	}
	switch tok.Type {
	case newlineToken, lbraceToken, rbraceToken:
		return true
	case symbolToken:
		return tok.Value == ";"
	}
	return false
}

func symbolNames(symbols map[string]lexer.TokenType) map[lexer.TokenType]string {
	out := make(map[lexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		out[tt] = name
	}
	return out
}

func tokenType(name string) lexer.TokenType {
	tt, ok := fitLexer.Symbols()[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
