// Package fuzztests houses Go fuzz harnesses for the lcc front end
// (source -> span scanner -> declaration validator). They guard against
// panics, hangs and broken output invariants on arbitrary input.
//
// Запуск: go test ./internal/fuzz -fuzz=FuzzValidate
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
