package lexer

import (
	"lcc/internal/diag"
	"lcc/internal/source"
)

type Options struct {
	// Reporter получает только восстановимые диагностики.
	// Может быть nil, тогда они игнорируются и сканирование продолжается.
	Reporter diag.Reporter
}

func (sc *scanner) report(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(sc.opts.Reporter, code, sp, msg).Emit()
}
