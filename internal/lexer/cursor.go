package lexer

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"lcc/internal/source"
)

// notFound: сентинел исчерпанного курсора
const notFound = ^uint32(0)

// Cursor remembers the next occurrence of a needle in a file.
// It only moves forward: Seek to an offset at or before Pos is a no-op.
type Cursor struct {
	File   *source.File
	Needle []byte
	Pos    uint32 // notFound когда вхождений больше нет
}

// NewCursor creates a cursor positioned at the first occurrence of needle.
func NewCursor(f *source.File, needle string) Cursor {
	c := Cursor{File: f, Needle: []byte(needle)}
	c.find(0)
	return c
}

// Exhausted reports that no occurrence remains.
func (c *Cursor) Exhausted() bool {
	return c.Pos == notFound
}

// Seek moves the cursor to the first occurrence at or after off,
// unless it already points there or further.
func (c *Cursor) Seek(off uint32) {
	if c.Pos == notFound || c.Pos >= off {
		return
	}
	c.find(off)
}

func (c *Cursor) find(from uint32) {
	content := c.File.Content
	if int(from) >= len(content) {
		c.Pos = notFound
		return
	}
	idx := bytes.Index(content[from:], c.Needle)
	if idx < 0 {
		c.Pos = notFound
		return
	}
	rel, err := safecast.Conv[uint32](idx)
	if err != nil {
		panic(fmt.Errorf("cursor offset overflow: %w", err))
	}
	c.Pos = from + rel
}

// backslashRun считает подряд идущие '\' непосредственно перед off, не заходя левее floor.
func backslashRun(content []byte, floor, off uint32) int {
	n := 0
	for i := off; i > floor && content[i-1] == '\\'; i-- {
		n++
	}
	return n
}
