// tree.go provides the entry points of the frontend. The scanner runs concurrently to the parser which lets one
// goroutine scan the source string for lexemes while the other builds the syntax tree.

package frontend

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"exprc/src/ir"
)

// Parse parses the syntax tree from the source code.
func Parse(src string) (*ir.CompUnit, error) {
	l := newLexer(src, lexGlobal)

	// Start scanner and run it concurrently to the parser.
	go l.run()
	defer l.drain()

	p := parser{l: l}
	if err := p.advance(); err != nil {
		return nil, err
	}
	cu, err := p.compUnit()
	if err != nil {
		return nil, err
	}
	if cu == nil {
		return nil, errors.New("root node is <nil>")
	}
	return cu, nil
}

// TokenStream writes the token stream of the given source string to w.
func TokenStream(src string, w io.Writer) error {
	l := newLexer(src, lexGlobal)
	go l.run()
	defer l.drain()

	tw := tabwriter.NewWriter(w, 10, 20, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Value\tType\tPosition\n")
	for {
		t := l.nextItem()
		switch t.typ {
		case itemEOF:
			return tw.Flush()
		case itemError:
			_ = tw.Flush()
			return errors.New(t.val)
		default:
			if len(t.val) > 20 {
				_, _ = fmt.Fprintf(tw, "%.17q...\t%s\tline: %d:%d\n", t.val, tokname(t.typ), t.line, t.pos)
			} else {
				_, _ = fmt.Fprintf(tw, "%q\t%s\tline: %d:%d\n", t.val, tokname(t.typ), t.line, t.pos)
			}
		}
	}
}
