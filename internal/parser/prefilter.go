package parser

import (
	"github.com/cloudflare/ahocorasick"

	"lcc/internal/token"
)

// keywordSet records which opener keywords occur anywhere in the buffer,
// live or not. A pass whose keyword never occurs is skipped.
type keywordSet struct {
	funcs   bool
	classes bool
}

var prefilterKeywords = []string{token.KwFunc.Text(), token.KwClass.Text()}

func prefilter(content []byte) keywordSet {
	// Matcher хранит состояние поиска, поэтому он свой на каждый вызов
	matcher := ahocorasick.NewStringMatcher(prefilterKeywords)
	var ks keywordSet
	for _, hit := range matcher.Match(content) {
		switch hit {
		case 0:
			ks.funcs = true
		case 1:
			ks.classes = true
		}
	}
	return ks
}

func (ks keywordSet) has(kind token.Kind) bool {
	switch kind {
	case token.KwFunc, token.KwEndfunc:
		return ks.funcs
	case token.KwClass, token.KwEndclass:
		return ks.classes
	}
	return true
}
