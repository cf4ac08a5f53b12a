package source

import "strings"

// FileID is the index of a file in its FileSet.
type FileID uint32

// FileFlags records how the content was changed on load.
type FileFlags uint8

const (
	// FileVirtual: содержимое пришло из памяти (тест, stdin), а не с диска.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

var flagNames = [...]string{"virtual", "bom", "crlf", "nfc"}

// Has reports whether every bit of f is set.
func (flags FileFlags) Has(f FileFlags) bool {
	return flags&f == f
}

// String lists the set flags, e.g. "bom,crlf"; empty when none is set.
func (flags FileFlags) String() string {
	var parts []string
	for i, name := range flagNames {
		if flags.Has(1 << i) {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ",")
}

// File is one loaded source unit. Content is never mutated after Add.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}
