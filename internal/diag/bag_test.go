package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcc/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestBagLimitKeepsFatal(t *testing.T) {
	b := NewBag(2)
	require.True(t, b.Add(NewError(SynMissingName, sp(0, 1), "a")))
	require.True(t, b.Add(NewError(SynMissingName, sp(1, 2), "b")))
	assert.False(t, b.Add(NewError(SynMissingName, sp(2, 3), "c")))
	assert.True(t, b.Add(NewFatal(SynUnfinishedFunc, sp(3, 7), "unfinished")))

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 1, b.Dropped())
	require.NotNil(t, b.Fatal())
	assert.Equal(t, SynUnfinishedFunc, b.Fatal().Code)
}

func TestBagSeverityQueries(t *testing.T) {
	b := NewBag(10)
	assert.False(t, b.HasWarnings())

	b.Add(New(SevInfo, ObsTimings, sp(0, 0), "timings"))
	assert.False(t, b.HasWarnings())
	assert.Len(t, b.Filter(SevWarning), 0)

	b.Add(New(SevWarning, IOEmptyFile, sp(0, 0), "empty"))
	assert.True(t, b.HasWarnings())
	assert.False(t, b.HasErrors())
	assert.Nil(t, b.Fatal())
	assert.Len(t, b.Filter(SevInfo), 2)
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(SemaDuplicateFunction, sp(20, 24), "dup"))
	b.Add(NewError(SynMissingReturnType, sp(0, 4), "ret"))
	b.Add(NewFileFatal(SynIncompleteClassParity, 0, "parity"))
	b.Add(NewError(SynMissingReturnType, sp(0, 4), "ret"))
	b.Add(New(SevWarning, LexUnexpectedBackslash, sp(0, 4), "bs"))

	b.Dedup()
	b.Sort()

	got := make([]Code, 0, b.Len())
	for _, d := range b.Items() {
		got = append(got, d.Code)
	}
	assert.Equal(t, []Code{
		SynIncompleteClassParity,
		SynMissingReturnType,
		LexUnexpectedBackslash,
		SemaDuplicateFunction,
	}, got)
}

func TestBagMerge(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SynMissingName, sp(0, 1), "a"))
	other := NewBag(5)
	other.Add(NewError(SynInvalidName, sp(1, 2), "b"))
	other.Add(NewError(SynInvalidName, sp(2, 3), "c"))

	a.Merge(other)
	assert.Equal(t, 3, a.Len())
	assert.GreaterOrEqual(t, a.Cap(), 3)
}

func TestDedupReporterForwardsOnce(t *testing.T) {
	var calls int
	next := ReporterFunc(func(Code, Severity, source.Span, string, []Note) { calls++ })
	r := NewDedupReporter(next)

	ReportError(r, SynNestedFunc, sp(5, 9), "illegal nested function").Emit()
	ReportError(r, SynNestedFunc, sp(5, 9), "illegal nested function").Emit()
	ReportError(r, SynNestedFunc, sp(15, 19), "illegal nested function").Emit()
	// другая severity: не дубликат
	ReportWarning(r, SynNestedFunc, sp(15, 19), "illegal nested function").Emit()

	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, r.Suppressed())

	var nilReporter *DedupReporter
	assert.Zero(t, nilReporter.Suppressed())
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	b := ReportError(BagReporter{Bag: bag}, SemaDuplicateFunction, sp(10, 14), "duplicate").
		WithNote(sp(0, 4), "previous declaration")
	b.Emit()
	b.Emit()

	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	assert.Equal(t, SevError, d.Severity)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "previous declaration", d.Notes[0].Msg)
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnterminatedString: "LEX1002",
		SynUnfinishedFunc:     "SYN2001",
		SemaReservedMain:      "SEM3001",
		IOLoadFileError:       "IO4001",
		ObsTimings:            "OBS6001",
		Code(9999):            "E0000",
	}
	for code, want := range cases {
		assert.Equal(t, want, code.ID())
	}
	assert.Equal(t, "[SEM3001]: main is reserved for top-level scope", SemaReservedMain.String())
	assert.Equal(t, "Unknown error", Code(1500).Title())
}
