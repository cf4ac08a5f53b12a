package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"lcc/internal/diag"
	"lcc/internal/source"
)

// SARIF 2.1.0 constants
const (
	SarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	SarifVersion   = "2.1.0"
)

// SarifReport is the top-level SARIF document.
type SarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SarifRun `json:"runs"`
}

type SarifRun struct {
	Tool        SarifTool         `json:"tool"`
	Invocations []SarifInvocation `json:"invocations,omitempty"`
	Results     []SarifResult     `json:"results"`
}

type SarifTool struct {
	Driver SarifDriver `json:"driver"`
}

type SarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []SarifRule `json:"rules,omitempty"`
}

type SarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription SarifMessage `json:"shortDescription"`
}

type SarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type SarifResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        int             `json:"ruleIndex"`
	Level            string          `json:"level"`
	Message          SarifMessage    `json:"message"`
	Locations        []SarifLocation `json:"locations"`
	RelatedLocations []SarifLocation `json:"relatedLocations,omitempty"`
}

type SarifMessage struct {
	Text string `json:"text"`
}

type SarifLocation struct {
	ID               int           `json:"id,omitempty"`
	PhysicalLocation SarifPhysical `json:"physicalLocation"`
	Message          *SarifMessage `json:"message,omitempty"`
}

type SarifPhysical struct {
	ArtifactLocation SarifArtifact `json:"artifactLocation"`
	// Region отсутствует у диагностик уровня файла.
	Region *SarifRegion `json:"region,omitempty"`
}

type SarifArtifact struct {
	URI string `json:"uri"`
}

type SarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	CharOffset  uint32 `json:"charOffset"`
	CharLength  uint32 `json:"charLength"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevFatal, diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func sarifURI(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

func sarifLocation(fs *source.FileSet, sp source.Span, whole bool) SarifLocation {
	f := lookup(fs, sp)
	if f == nil {
		return SarifLocation{}
	}
	loc := SarifLocation{PhysicalLocation: SarifPhysical{
		ArtifactLocation: SarifArtifact{URI: sarifURI(f.FormatPath("relative", fs.BaseDir()))},
	}}
	if whole {
		return loc
	}
	start, end := fs.Resolve(sp)
	loc.PhysicalLocation.Region = &SarifRegion{
		StartLine:   start.Line,
		StartColumn: start.Col,
		EndLine:     end.Line,
		EndColumn:   end.Col,
		CharOffset:  sp.Start,
		CharLength:  sp.Len(),
	}
	return loc
}

// BuildSarif converts diagnostics into a single-run SARIF report. Rules are
// the distinct codes in order of first use.
func BuildSarif(diags []*diag.Diagnostic, fs *source.FileSet, meta SarifRunMeta) SarifReport {
	run := SarifRun{
		Tool:    SarifTool{Driver: SarifDriver{Name: meta.ToolName, Version: meta.ToolVersion}},
		Results: make([]SarifResult, 0, len(diags)),
	}

	ruleIndex := make(map[diag.Code]int)
	failed := false
	for _, d := range diags {
		idx, ok := ruleIndex[d.Code]
		if !ok {
			idx = len(run.Tool.Driver.Rules)
			ruleIndex[d.Code] = idx
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SarifRule{
				ID:               d.Code.ID(),
				Name:             d.Code.Title(),
				ShortDescription: SarifMessage{Text: d.Code.Title()},
			})
		}
		if d.Severity >= diag.SevWarning {
			failed = true
		}

		res := SarifResult{
			RuleID:    d.Code.ID(),
			RuleIndex: idx,
			Level:     sarifLevel(d.Severity),
			Message:   SarifMessage{Text: d.Message},
			Locations: []SarifLocation{sarifLocation(fs, d.Primary, d.Whole)},
		}
		for i, n := range d.Notes {
			rel := sarifLocation(fs, n.Span, d.Whole)
			rel.ID = i + 1
			rel.Message = &SarifMessage{Text: n.Msg}
			res.RelatedLocations = append(res.RelatedLocations, rel)
		}
		run.Results = append(run.Results, res)
	}

	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []SarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: !failed,
		}}
	}

	return SarifReport{Schema: SarifSchemaURI, Version: SarifVersion, Runs: []SarifRun{run}}
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0)
func Sarif(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, meta SarifRunMeta) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildSarif(diags, fs, meta))
}
