package frontend

import "fmt"

// Token types beyond single characters. Single character tokens such as '(' or '+' use the character itself as
// their itemType, so these start above the ASCII range.
const (
	INTEGER itemType = iota + 256 // Integer literal.
	IDENTIFIER                    // Function name.
	INT                           // Keyword int.
	RETURN                        // Keyword return.
	RESERVED                      // Keyword of the language that this compiler does not support.
	EQ                            // ==
	NE                            // !=
	LE                            // <=
	GE                            // >=
	LAND                          // &&
	LOR                           // ||
)

type reservedItem struct {
	val string
	typ itemType
}

// rw contains the set of all reserved keywords.
// The first dimension equals the length of the word.
// The second dimension is the slice of all words of that length.
// Indexing by length and searching should be faster than using a hash table.
var rw = [...][]reservedItem{
	// One-grams
	{},
	// Two-grams
	{
		{val: "if", typ: RESERVED},
	},
	// Three-grams
	{
		{val: "int", typ: INT},
	},
	// Four-grams
	{
		{val: "void", typ: RESERVED},
		{val: "else", typ: RESERVED},
	},
	// Five-grams
	{
		{val: "const", typ: RESERVED},
		{val: "while", typ: RESERVED},
		{val: "break", typ: RESERVED},
	},
	// Six-grams
	{
		{val: "return", typ: RETURN},
	},
	// Seven-grams
	{},
	// Eight-grams
	{
		{val: "continue", typ: RESERVED},
	},
}

// tokenNames holds print friendly names of the multi-character token types.
var tokenNames = map[itemType]string{
	itemEOF:    "EOF",
	itemError:  "ERROR",
	INTEGER:    "INTEGER",
	IDENTIFIER: "IDENTIFIER",
	INT:        "INT",
	RETURN:     "RETURN",
	RESERVED:   "RESERVED",
	EQ:         "EQ",
	NE:         "NE",
	LE:         "LE",
	GE:         "GE",
	LAND:       "LAND",
	LOR:        "LOR",
}

// isKeyword returns true if the string s is a reserved keyword.
// On the return of true the itemType of the keyword is returned.
// On the return of false the itemType is either IDENTIFIER or itemError.
func isKeyword(s string) (bool, itemType) {
	if len(s) == 0 {
		return false, itemError
	}
	if len(s) > len(rw) {
		return false, IDENTIFIER
	}

	// Check if string s is a reserved word by iterating over all words in rw of length len(s).
	for _, e1 := range rw[len(s)-1] {
		if e1.val == s {
			return true, e1.typ
		}
	}
	return false, IDENTIFIER
}

// tokname returns a print friendly name of the token type typ.
func tokname(typ itemType) string {
	if s, ok := tokenNames[typ]; ok {
		return s
	}
	if typ > 0 && typ < 128 {
		return fmt.Sprintf("'%c'", rune(typ))
	}
	return fmt.Sprintf("tok-%d", int(typ))
}
