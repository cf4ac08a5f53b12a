package token

// Kind identifies a structural keyword.
type Kind uint8

const (
	// Invalid is the zero Kind.
	Invalid Kind = iota
	// KwFunc represents the 'func' keyword.
	KwFunc // func
	// KwEndfunc represents the 'endfunc' keyword.
	KwEndfunc // endfunc
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwEndclass represents the 'endclass' keyword.
	KwEndclass // endclass
	// KwInherits introduces the superclass list of a class header.
	KwInherits // inherits
	// KwAnd separates superclasses.
	KwAnd // and
)

func (k Kind) String() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	return "invalid"
}

// Opener reports whether k starts a declaration body.
func (k Kind) Opener() bool {
	return k == KwFunc || k == KwClass
}

// Closer returns the keyword that ends a body opened by k.
func (k Kind) Closer() Kind {
	switch k {
	case KwFunc:
		return KwEndfunc
	case KwClass:
		return KwEndclass
	default:
		return Invalid
	}
}

// InertKind classifies a byte range the validator must ignore.
type InertKind uint8

const (
	StringLit InertKind = iota
	LineComment
	BlockComment
)

func (k InertKind) String() string {
	switch k {
	case StringLit:
		return "string"
	case LineComment:
		return "line_comment"
	case BlockComment:
		return "block_comment"
	}
	return "unknown"
}

// IsComment reports whether k is one of the comment kinds.
func (k InertKind) IsComment() bool {
	return k == LineComment || k == BlockComment
}
