package expr

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Expression is a sum of terms: Term (('+' | '-') Term)*.
type Expression struct {
	Pos   lexer.Position
	Left  *Term     `parser:"@@"`
	Right []*OpTerm `parser:"@@*"`
}

// OpTerm is an additive operator followed by its right operand.
type OpTerm struct {
	Pos  lexer.Position
	Op   string `parser:"@( '+' | '-' )"`
	Term *Term  `parser:"@@"`
}

// Term is a product of unary operands: Unary (('*' | '/' | '//' | '%') Unary)*.
type Term struct {
	Pos   lexer.Position
	Left  *Unary     `parser:"@@"`
	Right []*OpUnary `parser:"@@*"`
}

// OpUnary is a multiplicative operator followed by its right operand.
type OpUnary struct {
	Pos   lexer.Position
	Op    string `parser:"@( '*' | '//' | '/' | '%' )"`
	Unary *Unary `parser:"@@"`
}

// Unary is an optionally signed power.
type Unary struct {
	Pos   lexer.Position
	Op    string `parser:"  ( @( '-' | '+' )"`
	Unary *Unary `parser:"    @@ )"`
	Power *Power `parser:"| @@"`
}

// Power is a primary optionally raised to a signed exponent. It binds tighter
// than a sign on its left and is right-associative.
type Power struct {
	Pos      lexer.Position
	Base     *Primary `parser:"@@"`
	Exponent *Unary   `parser:"( '**' @@ )?"`
}

// Primary is a literal, an identifier or a parenthesized expression.
type Primary struct {
	Pos    lexer.Position
	Float  *float64    `parser:"  @Float"`
	Int    *int64      `parser:"| @Int"`
	String *string     `parser:"| @String"`
	Bool   *Boolean    `parser:"| @( 'true' | 'false' | 'True' | 'False' )"`
	Ident  *string     `parser:"| @Ident"`
	Sub    *Expression `parser:"| '(' @@ ')'"`
}

// Boolean captures a boolean keyword.
type Boolean bool

// Capture implements participle.Capture.
func (b *Boolean) Capture(values []string) error {
	*b = values[0] == "true" || values[0] == "True"
	return nil
}

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Float", Pattern: `(?:\d+\.\d*|\.\d+)(?:[eE][+-]?\d+)?|\d+[eE][+-]?\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Operator", Pattern: `\*\*|//|[-+*/%()]`},
})

var parser = participle.MustBuild[Expression](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
