// The textual LIR lexer follows Rob Pike's state function design from his talk on Go scanners:
// https://talks.golang.org/2011/lex.slide#1
//
// Unlike the source lexer, the LIR lexer runs synchronously and collects its items in a slice, because the reader
// needs two items of lookahead to tell a block label from a returned temporary.

package lir

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// stateFunc defines the state of the lexer.
type stateFunc func(*lexer) stateFunc

// itemType is used to differentiate different tokens scanned by the lexer.
type itemType int

// item contains a lexeme scanned by the lexer and its line in the source stream.
type item struct {
	typ  itemType // Token type.
	val  string   // Value of token.
	line int      // Line of token in source stream.
}

// lexer traverses textual LIR character by character and collects items.
type lexer struct {
	input string // The textual LIR being scanned.
	start int    // The starting position of the current token.
	pos   int    // The current position of the scanner in the input.
	width int    // The width of the last scanned rune in bytes.
	line  int    // The current line in the input. Not zero-indexed.
	items []item // Scanned items.
}

// ---------------------
// ----- Constants -----
// ---------------------

const eof = 0

// Item types. Punctuation is emitted with the rune itself as item type.
const (
	itemEOF    itemType = iota
	itemError           // Lexical error; val holds the message.
	itemInt             // Decimal integer, optionally negative.
	itemGlobal          // @name.
	itemLocal           // %name, used by both temporaries and block labels.
	itemWord            // Keywords, mnemonics and type names.
)

// punctuation holds the single rune tokens of the textual LIR.
const punctuation = "(){}:,="

// ---------------------
// ----- Functions -----
// ---------------------

// String returns a print friendly string representation of the item.
func (i item) String() string {
	switch i.typ {
	case itemEOF:
		return "EOF"
	case itemError:
		return fmt.Sprintf("%s [ERROR]", i.val)
	}
	return fmt.Sprintf("%q", i.val)
}

// lex scans the textual LIR src and returns its items. The last item is either itemEOF or itemError.
func lex(src string) []item {
	l := &lexer{
		input: src,
		line:  1,
		items: make([]item, 0, len(src)/2),
	}
	for state := stateFunc(lexText); state != nil; {
		state = state(l)
	}
	return l.items
}

// emit appends an item of type typ holding the pending input.
func (l *lexer) emit(typ itemType) {
	l.items = append(l.items, item{
		typ:  typ,
		val:  l.input[l.start:l.pos],
		line: l.line,
	})
	l.start = l.pos
}

// next returns the next rune in the input.
func (l *lexer) next() (r rune) {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return r
}

// ignore skips over the pending input before this point.
func (l *lexer) ignore() {
	l.start = l.pos
}

// backup steps back one rune. Should only be called once per call of next.
func (l *lexer) backup() {
	if l.pos > l.start {
		l.pos -= l.width
	}
}

// peek returns, but does not consume, the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// errorf appends an error item and terminates the scan.
func (l *lexer) errorf(format string, args ...interface{}) stateFunc {
	l.items = append(l.items, item{
		typ:  itemError,
		val:  fmt.Sprintf(format, args...),
		line: l.line,
	})
	return nil
}

// lexText is the default state.
func lexText(l *lexer) stateFunc {
	for {
		r := l.next()
		switch {
		case r == eof:
			l.emit(itemEOF)
			return nil
		case r == '\n':
			l.ignore()
			l.line++
		case r == ' ' || r == '\t' || r == '\r':
			l.ignore()
		case r == '/' && l.peek() == '/':
			for c := l.next(); c != '\n' && c != eof; c = l.next() {
			}
			l.backup()
			l.ignore()
		case r == '@':
			return lexSymbol(itemGlobal)
		case r == '%':
			return lexSymbol(itemLocal)
		case r == '-' || isDigit(r):
			return lexInt
		case isAlpha(r):
			return lexWord
		case strings.ContainsRune(punctuation, r):
			l.emit(itemType(r))
		default:
			return l.errorf("line %d: unexpected character %q", l.line, r)
		}
	}
}

// lexSymbol returns a state that scans the name following an @ or % prefix.
func lexSymbol(typ itemType) stateFunc {
	return func(l *lexer) stateFunc {
		n := 0
		for r := l.next(); isAlpha(r) || isDigit(r) || r == '_'; r = l.next() {
			n++
		}
		l.backup()
		if n == 0 {
			return l.errorf("line %d: missing name after %q", l.line, l.input[l.start:l.pos])
		}
		l.emit(typ)
		return lexText
	}
}

// lexInt scans a decimal integer. The first rune, a digit or '-', has already been consumed.
func lexInt(l *lexer) stateFunc {
	n := 0
	if isDigit(rune(l.input[l.start])) {
		n++
	}
	for r := l.next(); isDigit(r); r = l.next() {
		n++
	}
	l.backup()
	if n == 0 {
		return l.errorf("line %d: expected digits after '-'", l.line)
	}
	l.emit(itemInt)
	return lexText
}

// lexWord scans keywords, mnemonics and type names.
func lexWord(l *lexer) stateFunc {
	for r := l.next(); isAlpha(r) || isDigit(r) || r == '_'; r = l.next() {
	}
	l.backup()
	l.emit(itemWord)
	return lexText
}

// ----------------------------
// ----- Helper functions -----
// ----------------------------

// isAlpha return true if rune r is an alphabetic character in the set [a-zA-Z].
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isDigit return true if rune r is a digit in the range [0-9].
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
