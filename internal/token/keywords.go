package token

var keywords = map[string]Kind{
	"func":     KwFunc,
	"endfunc":  KwEndfunc,
	"class":    KwClass,
	"endclass": KwEndclass,
	"inherits": KwInherits,
	"and":      KwAnd,
}

var kindText = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for text, k := range keywords {
		m[k] = text
	}
	return m
}()

// LookupKeyword returns the keyword kind for the exact lexeme.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}

// Lexemes fixed by the language.
const (
	SingleQuote  = '\''
	DoubleQuote  = '"'
	Backslash    = '\\'
	Newline      = '\n'
	LineOpener   = "//"
	BlockMarker  = "///"
	ReturnColon  = ':'
	LParen       = '('
	RParen       = ')'
	Comma        = ','
	DefaultValue = '='
)

// Text returns the source spelling of a keyword.
func (k Kind) Text() string {
	return kindText[k]
}

// Bytes returns the keyword spelling as a byte slice for searching.
func (k Kind) Bytes() []byte {
	return []byte(kindText[k])
}
