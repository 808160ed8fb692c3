package frontend

// twoRune maps the first rune of every two character operator to its second rune and token type.
var twoRune = map[rune]struct {
	second rune
	typ    itemType
}{
	'=': {'=', EQ},
	'!': {'=', NE},
	'<': {'=', LE},
	'>': {'=', GE},
	'&': {'&', LAND},
	'|': {'|', LOR},
}

// single holds every rune that is a token on its own.
const single = "(){};+-*/%!<>"

// lexGlobal starts the lexing process and serves as the default state.
func lexGlobal(l *lexer) stateFunc {
	for {
		r := l.next()
		switch {
		case isAlpha(r) || r == '_':
			// Keyword or identifier.
			return lexWord
		case isDigit(r):
			// Number.
			return lexNumber
		case r == '\n':
			// Newline.
			l.ignore()
			l.line++
			l.startOnLine = 1
		case isSpace(r):
			// Ignore whitespace. Newlines are caught before whitespaces.
			l.ignore()
		case r == '/' && l.peek() == '/':
			// Ignore line comments.
			for c := l.next(); c != '\n' && c != eof; c = l.next() {
			}
			l.ignore()
			l.line++
			l.startOnLine = 1
		case r == '/' && l.peek() == '*':
			return lexBlockComment
		case r == eof:
			// End of file: stop the state machine.
			l.emit(itemEOF)
			return nil
		default:
			if op, ok := twoRune[r]; ok && l.peek() == op.second {
				l.next()
				l.emit(op.typ)
				continue
			}
			if isSingle(r) {
				// Let parser use character as is.
				l.emit(itemType(r))
				continue
			}
			return l.errorf("line %d:%d: unexpected character %q", l.line, l.startOnLine, r)
		}
	}
}

// lexBlockComment skips a /* */ comment. The opening "/" is already consumed.
func lexBlockComment(l *lexer) stateFunc {
	line, pos := l.line, l.startOnLine
	l.next() // '*'
	for {
		r := l.next()
		switch {
		case r == eof:
			return l.errorf("line %d:%d: unclosed block comment", line, pos)
		case r == '\n':
			l.ignore()
			l.line++
			l.startOnLine = 1
		case r == '*' && l.peek() == '/':
			l.next()
			l.ignore()
			return lexGlobal
		}
	}
}

// lexWord scans the input string for keywords and identifiers.
func lexWord(l *lexer) stateFunc {
	// We know that the currently scanned rune is an alphabetic character or an underscore.
	for {
		r := l.next()

		// Check if character is valid character.
		if !isAlpha(r) && !isDigit(r) && r != '_' {
			l.backup()
			_, typ := isKeyword(l.input[l.start:l.pos])
			l.emit(typ)
			return lexGlobal
		}
	}
}

// lexNumber scans the input stream for an integer number: decimal, octal with a leading zero, or hexadecimal with
// a 0x prefix. Range and digit validity are checked by the parser.
func lexNumber(l *lexer) stateFunc {
	// We've scanned the first digit already. We don't scan negative numbers.
	// We instead let the parser handle negative numbers by grammar rules.
	if l.input[l.start] == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.next()
		l.acceptRun("0123456789abcdefABCDEF")
	} else {
		l.acceptRun("0123456789")
	}
	if r := l.peek(); isAlpha(r) || r == '_' {
		return l.errorf("line %d:%d: malformed number %q", l.line, l.startOnLine, l.input[l.start:l.pos+1])
	}
	l.emit(INTEGER)
	return lexGlobal
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

// isSpace return true if rune r is a whitespace character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r'
}

// isSingle returns true if rune r is a single character token.
func isSingle(r rune) bool {
	for _, e1 := range single {
		if e1 == r {
			return true
		}
	}
	return false
}
