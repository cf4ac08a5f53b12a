package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические (span scanner)
	LexInfo                     Code = 1000
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnexpectedBackslash      Code = 1006

	// Структурные (пары func/endfunc, class/endclass)
	SynInfo                  Code = 2000
	SynUnfinishedFunc        Code = 2001
	SynStrayEndfunc          Code = 2002
	SynMissingReturnType     Code = 2003
	SynMissingParamList      Code = 2004
	SynUnclosedParamList     Code = 2005
	SynNestedFunc            Code = 2006
	SynNestedClass           Code = 2007
	SynMissingName           Code = 2008
	SynInvalidName           Code = 2009
	SynMalformedParam        Code = 2010
	SynUnfinishedClass       Code = 2011
	SynStrayEndclass         Code = 2012
	SynIncompleteClassParity Code = 2013
	SynMissingSuperclass     Code = 2014

	// Имена
	SemaInfo              Code = 3000
	SemaReservedMain      Code = 3001
	SemaDuplicateFunction Code = 3002
	SemaDuplicateClass    Code = 3003

	// IO
	IOLoadFileError Code = 4001
	IOEmptyFile     Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexUnexpectedBackslash:      "Unexpected backslash before quote",
		SynInfo:                     "Structural information",
		SynUnfinishedFunc:           "Unfinished function declaration",
		SynStrayEndfunc:             "endfunc without matching func",
		SynMissingReturnType:        "Missing return type",
		SynMissingParamList:         "Missing parameter list",
		SynUnclosedParamList:        "Unclosed parameter list",
		SynNestedFunc:               "Illegal nested function",
		SynNestedClass:              "Illegal nested class",
		SynMissingName:              "Missing declaration name",
		SynInvalidName:              "Invalid declaration name",
		SynMalformedParam:           "Malformed parameter",
		SynUnfinishedClass:          "Unfinished class declaration",
		SynStrayEndclass:            "endclass without matching class",
		SynIncompleteClassParity:    "Incomplete class definition",
		SynMissingSuperclass:        "Missing superclass name",
		SemaInfo:                    "Naming information",
		SemaReservedMain:            "main is reserved for top-level scope",
		SemaDuplicateFunction:       "Duplicate function declaration",
		SemaDuplicateClass:          "Duplicate class declaration",
		IOLoadFileError:             "I/O load file error",
		IOEmptyFile:                 "Empty source file",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
