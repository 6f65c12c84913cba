package syntax

import "wabbitc/report"

// Token represents a single lexical token of Wabbit source.
type Token struct {
	// The token kind.  Must be one of the enumerated token kinds.
	Kind int

	// The source text of the token.
	Value string

	// The span of the token's source text.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	// Reserved keywords.
	TOK_CONST = iota
	TOK_VAR
	TOK_PRINT
	TOK_RETURN
	TOK_BREAK
	TOK_CONTINUE
	TOK_IF
	TOK_ELSE
	TOK_WHILE
	TOK_FUNC
	TOK_IMPORT
	TOK_TRUE
	TOK_FALSE

	// Identifiers and literals.
	TOK_IDENT
	TOK_INTLIT
	TOK_FLOATLIT
	TOK_CHARLIT

	// Operators.
	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_SLASH
	TOK_LT
	TOK_LE
	TOK_GT
	TOK_GE
	TOK_EQ
	TOK_NE
	TOK_LAND
	TOK_LOR
	TOK_NOT
	TOK_GROW

	// Punctuation.
	TOK_ASSIGN
	TOK_SEMI
	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_COMMA
	TOK_DEREF

	TOK_EOF
)

// keywordPatterns maps keyword strings to their token kind.
var keywordPatterns = map[string]int{
	"const":    TOK_CONST,
	"var":      TOK_VAR,
	"print":    TOK_PRINT,
	"return":   TOK_RETURN,
	"break":    TOK_BREAK,
	"continue": TOK_CONTINUE,
	"if":       TOK_IF,
	"else":     TOK_ELSE,
	"while":    TOK_WHILE,
	"func":     TOK_FUNC,
	"import":   TOK_IMPORT,
	"true":     TOK_TRUE,
	"false":    TOK_FALSE,
}

// tokenKindNames maps token kinds to the names used in syntax errors.
var tokenKindNames = map[int]string{
	TOK_IDENT:    "identifier",
	TOK_INTLIT:   "integer literal",
	TOK_FLOATLIT: "float literal",
	TOK_CHARLIT:  "character literal",
	TOK_PLUS:     "`+`",
	TOK_MINUS:    "`-`",
	TOK_STAR:     "`*`",
	TOK_SLASH:    "`/`",
	TOK_LT:       "`<`",
	TOK_LE:       "`<=`",
	TOK_GT:       "`>`",
	TOK_GE:       "`>=`",
	TOK_EQ:       "`==`",
	TOK_NE:       "`!=`",
	TOK_LAND:     "`&&`",
	TOK_LOR:      "`||`",
	TOK_NOT:      "`!`",
	TOK_GROW:     "`^`",
	TOK_ASSIGN:   "`=`",
	TOK_SEMI:     "`;`",
	TOK_LPAREN:   "`(`",
	TOK_RPAREN:   "`)`",
	TOK_LBRACE:   "`{`",
	TOK_RBRACE:   "`}`",
	TOK_COMMA:    "`,`",
	TOK_DEREF:    "`` ` ``",
	TOK_EOF:      "end of file",
}

func tokenKindName(kind int) string {
	if name, ok := tokenKindNames[kind]; ok {
		return name
	}

	for kw, kwKind := range keywordPatterns {
		if kwKind == kind {
			return "`" + kw + "`"
		}
	}

	return "token"
}
