package state

import "unicode/utf8"

// TextEditor is a single-line buffer whose cursor is a rune index, so every
// edit acts on whole codepoints. The cursor always satisfies
// 0 <= cursor <= Len().
type TextEditor struct {
	content []rune
	cursor  int
}

// NewTextEditor returns an empty editor.
func NewTextEditor() *TextEditor {
	return &TextEditor{}
}

// Value returns the buffer contents.
func (e *TextEditor) Value() string {
	return string(e.content)
}

// Len returns the buffer length in runes.
func (e *TextEditor) Len() int {
	return len(e.content)
}

// Cursor returns the rune offset of the cursor.
func (e *TextEditor) Cursor() int {
	return e.cursor
}

// SetValue replaces the buffer and moves the cursor to the end.
func (e *TextEditor) SetValue(value string) {
	e.content = []rune(value)
	e.cursor = len(e.content)
}

// Insert places r at the cursor and advances past it. Invalid runes are
// ignored.
func (e *TextEditor) Insert(r rune) bool {
	if !utf8.ValidRune(r) {
		return false
	}
	e.content = append(e.content, 0)
	copy(e.content[e.cursor+1:], e.content[e.cursor:])
	e.content[e.cursor] = r
	e.cursor++
	return true
}

// InsertString inserts each rune of text at the cursor.
func (e *TextEditor) InsertString(text string) bool {
	changed := false
	for _, r := range text {
		if e.Insert(r) {
			changed = true
		}
	}
	return changed
}

// Backspace removes the rune before the cursor.
func (e *TextEditor) Backspace() bool {
	if e.cursor == 0 {
		return false
	}
	e.content = append(e.content[:e.cursor-1], e.content[e.cursor:]...)
	e.cursor--
	return true
}

// DeleteForward removes the rune under the cursor.
func (e *TextEditor) DeleteForward() bool {
	if e.cursor >= len(e.content) {
		return false
	}
	e.content = append(e.content[:e.cursor], e.content[e.cursor+1:]...)
	return true
}

// MoveLeft moves the cursor one rune back.
func (e *TextEditor) MoveLeft() bool {
	if e.cursor == 0 {
		return false
	}
	e.cursor--
	return true
}

// MoveRight moves the cursor one rune forward.
func (e *TextEditor) MoveRight() bool {
	if e.cursor >= len(e.content) {
		return false
	}
	e.cursor++
	return true
}

// Home moves the cursor to the start.
func (e *TextEditor) Home() bool {
	if e.cursor == 0 {
		return false
	}
	e.cursor = 0
	return true
}

// End moves the cursor past the last rune.
func (e *TextEditor) End() bool {
	if e.cursor == len(e.content) {
		return false
	}
	e.cursor = len(e.content)
	return true
}

// Cancel yields no command. The buffer and cursor are left as they are.
func (e *TextEditor) Cancel() string {
	return ""
}

// Submit returns the buffer and resets the editor.
func (e *TextEditor) Submit() string {
	line := string(e.content)
	e.content = e.content[:0]
	e.cursor = 0
	return line
}

// Split returns the text before the cursor, the rune under it ("" at the
// end of the buffer), and the text after it.
func (e *TextEditor) Split() (before, at, after string) {
	before = string(e.content[:e.cursor])
	if e.cursor < len(e.content) {
		at = string(e.content[e.cursor])
		after = string(e.content[e.cursor+1:])
	}
	return before, at, after
}
