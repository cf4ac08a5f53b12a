package parser

import (
	"lcc/internal/diag"
	"lcc/internal/token"
)

// checkParity is the legacy class check: every class needs an endclass and
// both contain "class", so the live count must be even. It cannot say where
// the problem is.
func (v *validator) checkParity() *diag.Diagnostic {
	if !v.kw.has(token.KwClass) {
		return nil
	}
	if n := v.mask.CountLive(token.KwClass.Text(), 0, v.file.Len()); n%2 != 0 {
		return diag.NewFileFatal(diag.SynIncompleteClassParity, v.file.ID, "incomplete class definition")
	}
	return nil
}
