package driver

import (
	"encoding/json"
	"fmt"

	"lcc/internal/diag"
	"lcc/internal/observ"
	"lcc/internal/source"
)

// timingPayload is the JSON carried in the note of an OBS6001 diagnostic.
type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	Files   int                  `json:"files,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

func appendTimingDiagnostic(bag *diag.Bag, file source.FileID, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "file"
	}
	msg := fmt.Sprintf("timings (%s): total %.3f ms", payload.Kind, payload.TotalMS)

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := &diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{File: file},
		Whole:    true,
		Notes:    []diag.Note{{Span: source.Span{File: file}, Msg: string(data)}},
	}

	if bag.Add(entry) {
		return
	}
	// bag переполнен, но тайминги запрошены явно
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
