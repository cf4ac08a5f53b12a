package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// inlineSeeds cover every lexical and structural edge the scanner and the
// validator distinguish.
var inlineSeeds = []string{
	"",
	"func greet(): void\n print(\"hi\")\nendfunc\n",
	"func a(): int\n print(\"oops\nendfunc",
	"func a(): int\n func b(): int\n endfunc\nendfunc",
	"func add(int a, int b = f(1, 2)): int\nendfunc\n",
	"/// func x(): int ///\nfunc y(): int // endfunc\nendfunc\n",
	"'\\\\' \"\\\"\" '\\'",
	"\\\"x\"",
	"//////",
	"/////",
	"funcendfunc",
	"endfunc",
	"class Dog(str name) inherits Animal and Pet\n func bark(): void\n endfunc\nendclass\n",
	"class A\nclass B\nendclass\nendclass\n",
	"class A\n",
	"func main(): void\nendfunc\nfunc main(): void\nendfunc\n",
	"func f(\nendfunc",
	"func f) : int\nendfunc",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.lc файлы
	//nolint:errcheck // отсутствие корпуса не ошибка
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".lc" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
